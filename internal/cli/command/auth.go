package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/examprep-go/internal/cli/output"
	"github.com/yndnr/examprep-go/internal/cli/session"
	"github.com/yndnr/examprep-go/internal/core/domain"
)

// LoginCommand signs in with email and password.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to your account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
				EnvVars: []string{"EXAMPREP_PASSWORD"},
			},
		},
		Action: authLogin,
	}
}

// RegisterCommand creates an account and signs in.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Display name (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account email (prompted when omitted)",
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
				EnvVars: []string{"EXAMPREP_PASSWORD"},
			},
		},
		Action: authRegister,
	}
}

// LogoutCommand ends the session.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Sign out and forget the stored session",
		Action: authLogout,
	}
}

// StatusCommand shows the local session state without calling the API.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show session and connection status",
		Action: authStatus,
	}
}

func authLogin(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	p := newPrompter(c.App.Reader, c.App.ErrWriter)
	creds := domain.Credentials{
		Email:    p.value(c, "email", "Email"),
		Password: p.value(c, "password", "Password"),
	}

	var sess session.Session
	err = rt.spin("Signing in...", func() error {
		sess, err = rt.Auth().Login(c.Context, creds)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Signed in as %s.\n", displayName(sess))
	return nil
}

func authRegister(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	p := newPrompter(c.App.Reader, c.App.ErrWriter)
	creds := domain.Credentials{
		Name:     p.value(c, "name", "Name"),
		Email:    p.value(c, "email", "Email"),
		Password: p.value(c, "password", "Password"),
	}

	var sess session.Session
	err = rt.spin("Creating account...", func() error {
		sess, err = rt.Auth().Register(c.Context, creds)
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Signed in as %s.\n", displayName(sess))
	return nil
}

func authLogout(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	return rt.Auth().Logout(c.Context)
}

type statusView struct {
	APIURL        string `json:"apiUrl" yaml:"apiUrl"`
	Authenticated bool   `json:"authenticated" yaml:"authenticated"`
	User          string `json:"user,omitempty" yaml:"user,omitempty"`
	// Token is set for JWT tokens only.
	Token        *session.TokenInfo `json:"token,omitempty" yaml:"token,omitempty"`
	TokenExpired bool               `json:"tokenExpired,omitempty" yaml:"tokenExpired,omitempty"`
	ConfigFile   string             `json:"configFile" yaml:"configFile"`
	SessionDir   string             `json:"sessionDir" yaml:"sessionDir"`
}

func (s statusView) Tables(bool) []*output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("API URL", s.APIURL)
	t.AddRow("Authenticated", yesNo(s.Authenticated))
	t.AddRow("User", output.Cell(s.User))
	if s.Token != nil && s.Token.ExpiresAt != nil {
		exp := s.Token.ExpiresAt.Local().Format(time.RFC3339)
		if s.TokenExpired {
			exp += " (expired, run 'examprep-cli login')"
		}
		t.AddRow("Token expires", exp)
	}
	t.AddRow("Config file", s.ConfigFile)
	t.AddRow("Session dir", s.SessionDir)
	return []*output.Table{t}
}

func authStatus(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	view := statusView{
		APIURL:     rt.Client().BaseURL(),
		ConfigFile: rt.ConfigPath,
		SessionDir: rt.Config().Session.Dir,
	}
	if sess, err := rt.Store.Get(); err == nil && sess.Valid() {
		view.Authenticated = true
		view.User = sess.DisplayName
		if info, err := session.Inspect(sess.Token); err == nil {
			view.Token = &info
			view.TokenExpired = info.Expired(time.Now())
		}
	}
	return render(c, rt, view)
}

func displayName(s session.Session) string {
	if s.DisplayName == "" {
		return "(unnamed user)"
	}
	return s.DisplayName
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// prompter asks for values missing from flags. It shares one buffered
// reader so consecutive prompts do not lose input.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) value(c *cli.Context, flag, label string) string {
	if v := c.String(flag); v != "" || c.IsSet(flag) {
		return v
	}
	fmt.Fprintf(p.out, "%s: ", label)
	line, _ := p.in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}
