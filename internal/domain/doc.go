// Package domain defines the core business entities of the tours catalog
// and their validation rules.
package domain
