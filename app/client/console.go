package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shiftkerja/shiftclient/core/session"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("invalid usage")
)

const helpText = `commands:
  login <email> <password>  authenticate and persist the session
  logout                    clear the session and return to the login page
  go <path>                 navigate to path through the guard
  connect                   open the realtime connection
  disconnect                close the realtime connection
  send <payload>            send a JSON value, or plain text as a JSON string
  status                    show session, route and connection state
  inbox                     print received messages
  quit                      exit
`

// Exec runs a single console command and writes its output to out.
// quit reports whether the console should stop.
func (a *App) Exec(ctx context.Context, line string, out io.Writer) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "?":
		_, err = io.WriteString(out, helpText)
	case "login":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: login <email> <password>", ErrUsage)
		}
		if a.session.Login(ctx, session.Credentials{Email: args[0], Password: args[1]}) {
			res := a.router.Navigate(ctx, "/")
			_, err = fmt.Fprintf(out, "logged in as %s, at %s\n", a.session.Current().Role, res.Path)
		} else {
			_, err = io.WriteString(out, "login failed\n")
		}
	case "logout":
		a.session.Logout(ctx)
		_, err = fmt.Fprintf(out, "logged out, at %s\n", a.router.Current())
	case "go":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: go <path>", ErrUsage)
		}
		res := a.router.Navigate(ctx, args[0])
		if res.Blocked {
			_, err = fmt.Fprintf(out, "%s: %s blocked, still at %s\n", res.Requested, res.Decision, res.Path)
		} else {
			_, err = fmt.Fprintf(out, "%s: %s, at %s\n", res.Requested, res.Decision, res.Path)
		}
	case "connect":
		if a.conn.Connect(ctx) {
			_, err = io.WriteString(out, "connecting\n")
		} else {
			_, err = fmt.Fprintf(out, "already %s\n", a.conn.State())
		}
	case "disconnect":
		err = a.conn.Close()
		if err == nil {
			_, err = io.WriteString(out, "disconnected\n")
		}
	case "send":
		if len(args) == 0 {
			return false, fmt.Errorf("%w: send <payload>", ErrUsage)
		}
		if a.conn.Send(payload(strings.Join(args, " "))) {
			_, err = io.WriteString(out, "sent\n")
		} else {
			_, err = fmt.Fprintf(out, "not sent, connection is %s\n", a.conn.State())
		}
	case "status":
		err = a.writeStatus(out)
	case "inbox":
		for i, msg := range a.conn.Inbox() {
			if _, err = fmt.Fprintf(out, "%d: %s\n", i+1, msg); err != nil {
				break
			}
		}
	case "quit", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	return false, err
}

func (a *App) writeStatus(out io.Writer) error {
	s := a.session.Current()
	st := a.conn.Status()

	var b strings.Builder
	if s.IsAuthenticated() {
		fmt.Fprintf(&b, "session: %s", s.Role)
		if claims, err := session.ParseClaims(s.Token); err == nil {
			fmt.Fprintf(&b, " (user %d", claims.UserID)
			if exp := claims.Expiry(); !exp.IsZero() {
				fmt.Fprintf(&b, ", expires %s", exp.Format("2006-01-02 15:04"))
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	} else {
		b.WriteString("session: anonymous\n")
	}
	fmt.Fprintf(&b, "route: %s\n", a.router.Current())
	fmt.Fprintf(&b, "realtime: %s", st.State)
	if r := st.Reason.String(); r != "" {
		fmt.Fprintf(&b, " (%s)", r)
	}
	fmt.Fprintf(&b, ", %d messages\n", len(a.conn.Inbox()))

	_, err := io.WriteString(out, b.String())
	return err
}

// payload keeps valid JSON as is and wraps anything else as a JSON string.
func payload(s string) any {
	if json.Valid([]byte(s)) {
		return json.RawMessage(s)
	}
	return s
}
