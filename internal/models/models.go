package models

import "time"

// Hotel represents a hotel account in the system
type Hotel struct {
	ID           string    `json:"id"`
	MobileNumber string    `json:"mobileNumber"`
	Name         string    `json:"name"`
	HotelName    string    `json:"hotelName"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OneTimeCode represents a short-lived login code for a mobile number.
// At most one active code exists per number.
type OneTimeCode struct {
	MobileNumber string    `json:"mobileNumber"`
	Code         string    `json:"code"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MenuRecord represents a hotel's published menu photo for one day
type MenuRecord struct {
	ID       string    `json:"id"`
	HotelID  string    `json:"hotelId"`
	ImageURL string    `json:"imageUrl"`
	Note     string    `json:"note"`
	Date     time.Time `json:"date"`
}

// MenuWithHotel is a menu record joined with its hotel's display fields,
// used by the public feeds.
type MenuWithHotel struct {
	MenuRecord
	HotelName string `json:"hotelName"`
	OwnerName string `json:"ownerName"`
}

// SubscriptionKeys holds the client keys of a web push subscription
type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// Subscription is the browser-side push subscription object
type Subscription struct {
	Endpoint       string           `json:"endpoint"`
	ExpirationTime *time.Time       `json:"expirationTime"`
	Keys           SubscriptionKeys `json:"keys"`
}

// PushSubscription represents a stored push subscription for a hotel.
// (hotel_id, endpoint) is unique.
type PushSubscription struct {
	ID           string       `json:"id"`
	HotelID      string       `json:"hotelId"`
	Subscription Subscription `json:"subscription"`
	CreatedAt    time.Time    `json:"createdAt"`
}
