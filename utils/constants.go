// File: utils/constants.go
package utils

import "time"

// AuthCachePrefix is the prefix used for Redis session token hash keys.
const AuthCachePrefix = "auth:"

// AllBookingsCacheKey holds the short-lived cached /api/allbookings payload.
const AllBookingsCacheKey = "allBookings"

// AllBookingsCacheTTL bounds staleness of the cached all-bookings view.
// Polling clients hit this endpoint continuously, so even a couple of
// seconds takes most reads off Mongo.
const AllBookingsCacheTTL = 2 * time.Second
