// Package schema describes the callable surface of a service: the actions
// it exposes, the parameters each action takes, and the outputs it reports
// back.
//
// A Service is pure data. It says nothing about how actions execute; it
// exists so callers and servers can agree on what a well-formed request
// looks like before anything runs. The core/validation package consumes
// these descriptions to vet incoming requests.
//
// Services travel as JSON (see Parse and Encode). Parameter kinds appear on
// the wire as bare name strings, except Enum, which spells out its allowed
// values:
//
//	{
//	  "param_name": "color",
//	  "description": "paint color",
//	  "type": {"Enum": ["RED", "BLUE"]},
//	  "required": true
//	}
//
// A Holder wraps a Service loaded from disk and swaps it atomically when the
// file changes, so long-running servers pick up contract edits without a
// restart.
package schema
