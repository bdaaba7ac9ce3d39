// Package consts holds the context keys, header names and identifier
// alphabets shared across the service.
package consts
