// Package models contains database model definitions for roles, users and
// the fixed capability set they carry.
package models
