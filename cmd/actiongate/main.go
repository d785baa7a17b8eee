// Package main is the entry point for ActionGate.
//
//	@title						ActionGate API
//	@version					1.0
//	@description				Schema-driven validation service for typed action requests.
//	@termsOfService				https://github.com/artpar/actiongate
//
//	@contact.name				ActionGate Support
//	@contact.url				https://github.com/artpar/actiongate/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@BasePath					/
package main

func main() {
	Execute()
}
