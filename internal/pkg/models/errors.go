package models

import "errors"

var (
	// ErrNoLocationSource is returned when a tracking session cannot start its location feed.
	ErrNoLocationSource = errors.New("no location source available")
	// ErrAlreadyTracking is returned when starting a session that is already tracking.
	ErrAlreadyTracking = errors.New("session is already tracking")
	// ErrSessionNotFound is returned when no session exists for a vehicle.
	ErrSessionNotFound = errors.New("tracking session not found")
	// ErrStoreWrite marks a failed position upsert. The next sample supersedes it.
	ErrStoreWrite = errors.New("position store write failed")
	// ErrStoreDelete marks a failed position delete. The entry stays visible
	// until a later session overwrites it or its TTL expires.
	ErrStoreDelete = errors.New("position store delete failed")
	// ErrMalformedEntry marks a stored document without usable coordinates.
	ErrMalformedEntry = errors.New("malformed position entry")
	// ErrInvalidPosition is returned for coordinates that are not finite.
	ErrInvalidPosition = errors.New("invalid position")
	// ErrSubscriptionClosed is returned by a subscription after Close.
	ErrSubscriptionClosed = errors.New("subscription closed")
)
