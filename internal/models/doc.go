// Package models defines domain entities and persistence interfaces for studyous.
//
// Persistent entities:
//   - [User] : an account with login credentials and public profile fields
//   - [Video] : an uploaded course video with its storage location
//
// Both implement [Model] (ID, timestamps, validation). The [Repository] interface
// defines standard CRUD operations for database access.
package models
