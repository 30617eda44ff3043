package common

// AuthorizationHeader carries the bearer token on every non-auth request.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the token inside AuthorizationHeader.
const BearerPrefix = "Bearer "

// UserIDClaim is the JWT claim holding the user identifier.
const UserIDClaim = "id"
