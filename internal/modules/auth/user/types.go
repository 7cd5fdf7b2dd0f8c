package user

import "errors"

var (
	errEmailInUse         = errors.New("email already in use")
	errInvalidCredentials = errors.New("invalid email or password")
	errUserNotFound       = errors.New("user not found")
)

const (
	msgRegistered       = "User registered successfully!"
	msgEmailInUse       = "Email already in use"
	msgRegisterFailed   = "Failed to register user"
	msgPasswordTooLong  = "Password must be at most 72 bytes"
	msgInvalidLogin     = "Invalid email or password"
	msgLoginFailed      = "Failed to log in"
	msgSubscribed       = "User subscription status updated successfully"
	msgUserNotFound     = "User not found"
	msgSubscribeFailed  = "Failed to update user subscription"
	msgSubscriptionBody = "subscription_status is required"
	msgCredentialsBody  = "Email and password are required"
)

type RegisterDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginDTO struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SubscriptionDTO uses a pointer so an explicit false is distinguishable
// from a missing field.
type SubscriptionDTO struct {
	SubscriptionStatus *bool `json:"subscription_status" binding:"required"`
}

type registerResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
}
