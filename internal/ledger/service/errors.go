package service

import "errors"

var (
	// ErrClientNotFound is returned when the referenced client does not exist.
	ErrClientNotFound = errors.New("client not found")

	// ErrEmailAlreadyUsed is returned when another client already owns the email.
	ErrEmailAlreadyUsed = errors.New("email already used")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameAlreadyTaken is returned when the username is already registered.
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// ErrDispatchFailed is returned when a relance was recorded but the
	// reminder could not be handed to the dispatcher.
	ErrDispatchFailed = errors.New("reminder dispatch failed")

	// ErrInvalidAction is returned for an unknown audit or connexion action.
	ErrInvalidAction = errors.New("invalid action")
)
