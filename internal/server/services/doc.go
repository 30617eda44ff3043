// Package services contains the server-side business logic behind the REST
// API: accounts and tokens (UserService), the per-user garage records
// (GarageService) and vehicle photo storage (ImageService).
//
// Services return sentinel errors from internal/common, wrapped with
// context; the API layer maps them to HTTP statuses with errors.Is.
package services
