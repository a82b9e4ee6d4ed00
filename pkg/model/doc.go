// Package model defines the survey data model shared by the builder core and
// every renderer. A FormSet holds ordered Forms, each Form holds ordered
// Blocks, and a Block's Type decides which of its configuration fields carry
// meaning: NumButtons and ButtonNames for radio/checkbox blocks, Options for
// dropdown blocks, and IsRequired for plain inputs. Values in this package
// are plain snapshots; mutation lives in pkg/builder.
package model
