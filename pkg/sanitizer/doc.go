// Package sanitizer provides input normalization for user-supplied data.
//
// All normalization functions are idempotent - applying them multiple times
// produces the same result. Functions handle invalid input gracefully,
// typically by returning the trimmed input or an empty string rather than
// an error; validation proper happens afterwards in the domain validators.
//
// Normalization includes:
//   - Names: collapse internal whitespace, trim leading/trailing spaces
//   - Emails: trim and lowercase
//   - Phone numbers: strip separators, preserve a leading +
package sanitizer
