// Package cli implements the interactive admin console for indexkeeper.
//
// The console mints its own API tokens from the shared server secret, so an
// operator with the secret can manage index sets without a separate auth
// service. Commands map one to one onto the HTTP API: list, show, create,
// update and delete.
package cli
