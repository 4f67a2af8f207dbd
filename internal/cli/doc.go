// Package cli is the terminal front end: an interactive shell over the
// checklist plus one-shot subcommands for scripting.
//
// The shell accepts:
//
//	show                      print the checklist and budget summary
//	toggle <slot>             flip a slot's acquired flag
//	price <slot> <amount>     set a slot price (non-numeric input means 0)
//	part <slot> <text...>     set a slot's part name
//	budget <amount>           set the total budget
//	currency <code>           switch the display currency
//	add <name...>             add an extra component
//	rm|xtoggle <n>            remove or flip extra component n
//	xprice <n> <amount>       set extra component n's price
//	xpart <n> <text...>       set extra component n's part name
//	reset                     clear slots and extras, keep budget and currency
//	login | signup | logout   manage the session
//	status | help | exit
//
// Slots are named by ID (cpu, gpu, ...) or by their 1-based position.
package cli
