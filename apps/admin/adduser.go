package main

import (
	"context"
	"net/mail"

	"github.com/MDharunPrasad/giglabs-intern-venture/apps"
	"github.com/MDharunPrasad/giglabs-intern-venture/core"
	"github.com/MDharunPrasad/giglabs-intern-venture/core/user"
)

// addUser updates or creates an active user.User
func (cli *commandLine) addUser(name, email, pwd string, isStaff bool) error {
	ctx := context.Background()
	name = core.CleanString(name)
	email = core.CleanString(email, true /* lower */)
	if _, err := mail.ParseAddress(email); err != nil {
		return apps.NewArgumentError("invalid email: " + email)
	}

	now := user.NowFunc().UTC()
	usr, err := cli.usrRepo.GetUser(ctx, user.GetFilter{Email: email})
	create := err == user.ErrNotFound
	if err != nil && !create {
		return err
	}
	if create {
		usr = user.User{Email: email, CreatedAt: now}
	}

	usr.Name = name
	usr.IsActive = true
	usr.UpdatedAt = now
	usr.Roles = user.StudentRoles
	if isStaff {
		usr.Roles = user.StaffRoles
	}
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}

	if create {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
