package domain

import "errors"

// Domain errors
var (
	// Booking errors
	ErrBookingNotFound          = errors.New("booking not found")
	ErrNotCancellable           = errors.New("booking is not cancellable")
	ErrCancellationWindowClosed = errors.New("cancellation window has closed")

	// Schedule errors
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrInsufficientSeats = errors.New("insufficient seats available")
	ErrDepartureInPast   = errors.New("departure time is in the past")

	// Payment errors
	ErrPaymentFailed = errors.New("payment failed")

	// Catalog errors
	ErrRouteNotFound = errors.New("route not found")
	ErrBusNotFound   = errors.New("bus not found")

	// Company errors
	ErrCompanyNotFound      = errors.New("company not found")
	ErrCompanyNotApproved   = errors.New("company is not approved")
	ErrCompanyAlreadyExists = errors.New("user already owns a company")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrPlateAlreadyExists = errors.New("plate number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("operation not permitted for this user")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Validation errors
	ErrInvalidUserID         = errors.New("invalid user id")
	ErrInvalidBookingID      = errors.New("invalid booking id")
	ErrInvalidScheduleID     = errors.New("invalid schedule id")
	ErrInvalidSeatNumber     = errors.New("seat number is required")
	ErrInvalidPaymentMethod  = errors.New("unsupported payment method")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidRole           = errors.New("invalid role")
	ErrInvalidCompanyStatus  = errors.New("invalid company status")
	ErrInvalidCapacity       = errors.New("capacity must be greater than zero")
	ErrInvalidPrice          = errors.New("price cannot be negative")
	ErrInvalidPassengerCount = errors.New("passenger count must be greater than zero")
	ErrInvalidTimeRange      = errors.New("arrival must be after departure")
)

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrRouteNotFound) ||
		errors.Is(err, ErrBusNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrUserNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidBookingID) ||
		errors.Is(err, ErrInvalidScheduleID) ||
		errors.Is(err, ErrInvalidSeatNumber) ||
		errors.Is(err, ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrInvalidCompanyStatus) ||
		errors.Is(err, ErrInvalidCapacity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidPassengerCount) ||
		errors.Is(err, ErrInvalidTimeRange) ||
		errors.Is(err, ErrDepartureInPast)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrInsufficientSeats) ||
		errors.Is(err, ErrNotCancellable) ||
		errors.Is(err, ErrCancellationWindowClosed) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrPlateAlreadyExists) ||
		errors.Is(err, ErrCompanyAlreadyExists) ||
		errors.Is(err, ErrCompanyNotApproved)
}
