package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/komsit37/papertrade/pkg/pt/route"
	"github.com/komsit37/papertrade/pkg/pt/session"
)

func (a *app) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login EMAIL",
		Short: "Log in as EMAIL (the password is required but not checked)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.gate(route.Login); err != nil {
				return err
			}
			var email string
			if len(args) == 1 {
				email = args[0]
			}
			if err := session.ValidateLogin(email, password); err != nil {
				return err
			}
			if err := a.session.Login(email); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s\n", a.session.User())
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var name, email, password, confirm string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in with its email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.gate(route.Register); err != nil {
				return err
			}
			if err := session.ValidateRegister(name, email, password, confirm); err != nil {
				return err
			}
			if err := a.session.Login(email); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome, %s! Logged in as %s\n", name, a.session.User())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "full name")
	f.StringVar(&email, "email", "", "email address")
	f.StringVarP(&password, "password", "p", "", "password, at least 6 characters")
	f.StringVar(&confirm, "confirm", "", "password again")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user := a.session.User()
			if err := a.session.Logout(); err != nil {
				return err
			}
			if user == "" {
				fmt.Fprintln(a.out, "Not logged in")
				return nil
			}
			fmt.Fprintf(a.out, "Logged out %s\n", user)
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.session.Require()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, user)
			return nil
		},
	}
}
