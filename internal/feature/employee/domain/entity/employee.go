// Package entity defines the domain entities for the employee feature.
package entity

import "time"

// Employee represents one row of the employee directory.
type Employee struct {
	// ID is assigned by the store on insert and never reassigned.
	ID uint `gorm:"primaryKey"`

	Name string `gorm:"size:255;not null"`

	// Email must be unique across all employees.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	Position string `gorm:"size:255;not null"`

	// CreatedAt is set once at insert.
	CreatedAt time.Time `gorm:"index"`

	// UpdatedAt is refreshed on every successful update.
	UpdatedAt time.Time
}

// Fields is the mutable part of an employee as submitted by a client.
type Fields struct {
	Name     string
	Email    string
	Position string
}
