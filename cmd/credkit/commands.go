package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/credkit/pkg/models"
	"github.com/knadh/credkit/pkg/password"
	"github.com/knadh/credkit/pkg/random"
	"github.com/knadh/credkit/pkg/strength"
	"github.com/knadh/koanf/v2"
)

const (
	cmdPassword = "password"
	cmdStrength = "strength"
	cmdOTP      = "otp"

	keyChars = models.UpperChars + models.LowerChars + models.NumChars
	keyLen   = 32

	// Exit codes.
	exitOK    = 0
	exitFail  = 1
	exitError = 2
)

type passwordTpl struct {
	Passwords []string
	Policy    models.PasswordPolicy
	PoolSize  int
}

type strengthTpl struct {
	Result   models.StrengthResult
	Criteria models.StrengthCriteria
}

type otpTpl struct {
	Key       string
	Code      string
	TTL       time.Duration
	ExpiresAt time.Time
}

// run executes a command and returns the process exit code.
func (app *App) run(cmd string, args []string, ko *koanf.Koanf) int {
	var (
		ok  bool
		err error
	)

	switch cmd {
	case cmdPassword:
		err = app.handlePassword(ko.Int("count"))
		ok = err == nil
	case cmdStrength:
		var pw string
		if len(args) > 0 {
			pw = args[0]
		} else {
			pw, err = app.readLine()
		}
		if err == nil {
			ok, err = app.handleStrength(pw)
		}
	case cmdOTP:
		ok, err = app.handleOTP(ko.String("key"))
	default:
		app.lo.Error("unknown command", "command", cmd)
		return exitError
	}

	if err != nil {
		app.lo.Error("error running command", "command", cmd, "error", err)
		return exitError
	}
	if !ok {
		return exitFail
	}
	return exitOK
}

// handlePassword generates n passwords with the configured policy.
func (app *App) handlePassword(n int) error {
	if n < 1 {
		return errors.New("count should be at least 1")
	}

	out := passwordTpl{
		Passwords: make([]string, 0, n),
		Policy:    app.conf.Password,
		PoolSize:  len(password.Pool(app.conf.Password)),
	}
	for i := 0; i < n; i++ {
		p, err := password.Generate(app.src, app.conf.Password)
		if err != nil {
			return err
		}
		out.Passwords = append(out.Passwords, p)
	}

	return app.tpl.ExecuteTemplate(app.out, cmdPassword, out)
}

// handleStrength scores pw against the configured criteria. It returns
// true if every rule is satisfied.
func (app *App) handleStrength(pw string) (bool, error) {
	res := strength.Check(pw, app.conf.Strength)
	if err := app.tpl.ExecuteTemplate(app.out, cmdStrength, strengthTpl{
		Result:   res,
		Criteria: app.conf.Strength,
	}); err != nil {
		return false, err
	}

	return res.OK(), nil
}

// handleOTP creates an OTP for key, prints it and then reads attempts
// from the input until one succeeds, the OTP expires or the input ends.
func (app *App) handleOTP(key string) (bool, error) {
	// If there is no incoming key, generate a random one.
	if key == "" {
		k, err := random.String(app.src, keyLen, keyChars)
		if err != nil {
			return false, fmt.Errorf("error generating key: %v", err)
		}
		key = k
	}

	code, err := app.otp.Create(key)
	if err != nil {
		return false, err
	}

	if err := app.tpl.ExecuteTemplate(app.out, cmdOTP, otpTpl{
		Key:       key,
		Code:      code,
		TTL:       app.otp.TTL(),
		ExpiresAt: time.Now().Add(app.otp.TTL()),
	}); err != nil {
		return false, err
	}

	fmt.Fprint(app.out, "Enter OTP: ")
	sc := bufio.NewScanner(app.in)
	for sc.Scan() {
		val := strings.TrimSpace(sc.Text())
		if val == "" {
			fmt.Fprint(app.out, "Enter OTP: ")
			continue
		}

		ok, err := app.otp.Validate(key, val)
		if err != nil {
			return false, err
		}
		if ok {
			fmt.Fprintln(app.out, "OTP verified.")
			return true, nil
		}

		// The manager only holds this key. If the record is gone, it expired.
		if app.otp.Len() == 0 {
			fmt.Fprintln(app.out, "OTP expired.")
			return false, nil
		}
		fmt.Fprint(app.out, "Incorrect OTP. Try again: ")
	}
	if err := sc.Err(); err != nil {
		return false, err
	}

	fmt.Fprintln(app.out, "\nOTP not verified.")
	return false, nil
}

// readLine reads a single line from the input.
func (app *App) readLine() (string, error) {
	sc := bufio.NewScanner(app.in)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", errors.New("no input")
	}
	return strings.TrimRight(sc.Text(), "\r\n"), nil
}
