// Package parcel provides the Package aggregate: the persisted record of one
// delivery request from the order source, owning its line Items.
//
// The package name avoids the Go keyword; the aggregate keeps the domain name Package.
package parcel
