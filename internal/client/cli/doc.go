// Package cli implements the interactive messagely command-line client.
//
// The client keeps the session token in memory only; nothing is written to
// disk. Passwords are read without echo via golang.org/x/term.
//
// Commands
//
//	help            show available commands
//	register        create an account (logs in on success)
//	login           authenticate
//	users           list all users
//	me              show your profile
//	inbox           messages you received
//	outbox          messages you sent
//	send [user]     send a message (body ends on an empty line)
//	show <id>       show a single message
//	read <id>       mark a received message as read
//	logout          forget the token
//	exit | quit     leave the program
package cli
