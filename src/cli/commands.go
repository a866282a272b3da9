// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-validator/src/internal/helper/input"
	x509chain "github.com/H0llyW00dzZ/x509-validator/src/x509/chain"
	x509keys "github.com/H0llyW00dzZ/x509-validator/src/x509/keys"
)

const caFlagUsage = "candidate issuer as NAME=FILE, in lookup order (repeatable, at most 4)"

func (a *app) validateCommand() *cobra.Command {
	var (
		caSpecs   []string
		allowWeak bool
		purposes  []string
		host      string
		leaf      bool
		ocsp      bool
	)

	cmd := &cobra.Command{
		Use:   "validate CERT",
		Short: "Validate expiry, wildcards, signature algorithm and issuer of a certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			cert, err := input.Read(args[0])
			if err != nil {
				return err
			}
			pool, err := a.pool(caSpecs)
			if err != nil {
				return err
			}

			if err := a.validator.ValidateCertificate(cert, pool, allowWeak || a.config.Validation.AllowWeakAlgorithm); err != nil {
				return err
			}

			required := slices.Concat(a.config.Validation.RequiredPurposes, purposes)
			if len(required) > 0 {
				if err := a.validator.ValidatePurpose(cert, required...); err != nil {
					return err
				}
			}
			if leaf {
				if err := a.validator.ValidateLeaf(cert); err != nil {
					return err
				}
			}
			if host != "" {
				if err := a.validator.ValidateHost(cert, host); err != nil {
					return err
				}
			}
			if ocsp || a.config.OCSP.Enabled {
				if err := a.ocspValidator(0).ValidateStatus(cmd.Context(), cert, pool); err != nil {
					return err
				}
			}

			OperationPerformedSuccessfully = true
			fmt.Fprintln(a.out, "Certificate is valid.")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&caSpecs, "ca", nil, caFlagUsage)
	cmd.Flags().BoolVar(&allowWeak, "allow-weak", false, "skip the signature algorithm strength check")
	cmd.Flags().StringArrayVarP(&purposes, "purpose", "p", nil, "required purpose, e.g. \"SSL server\" or \"S/MIME\" (repeatable)")
	cmd.Flags().StringVar(&host, "host", "", "hostname the certificate must serve")
	cmd.Flags().BoolVar(&leaf, "leaf", false, "require a leaf (CA:FALSE) certificate")
	cmd.Flags().BoolVar(&ocsp, "ocsp", false, "check revocation with the OCSP responder")

	return cmd
}

func (a *app) purposeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "purpose CERT PURPOSE...",
		Short: "Check that a certificate supports every given purpose",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			cert, err := input.Read(args[0])
			if err != nil {
				return err
			}
			if err := a.validator.ValidatePurpose(cert, args[1:]...); err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			fmt.Fprintln(a.out, "Certificate supports all purposes.")
			return nil
		},
	}
}

func (a *app) hostCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "host CERT HOSTNAME",
		Short: "Check that a TLS server certificate covers a hostname",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			cert, err := input.Read(args[0])
			if err != nil {
				return err
			}
			if err := a.validator.ValidateHost(cert, args[1]); err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			fmt.Fprintf(a.out, "Certificate supports host %q.\n", args[1])
			return nil
		},
	}
}

func (a *app) keyCommand() *cobra.Command {
	var minBits int

	cmd := &cobra.Command{
		Use:   "key KEY CERT",
		Short: "Check that a private key belongs to a certificate and is strong enough",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			raw, err := input.Read(args[0])
			if err != nil {
				return err
			}
			key := x509keys.NewSecretKey(raw)
			clear(raw)
			defer key.Destroy()

			cert, err := input.Read(args[1])
			if err != nil {
				return err
			}

			if minBits <= 0 {
				minBits = a.config.Validation.MinimumKeyBits
			}
			if err := x509keys.NewValidator(a.extractor.Provider()).Validate(key, cert, minBits); err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			fmt.Fprintln(a.out, "Private key matches the certificate.")
			return nil
		},
	}

	cmd.Flags().IntVar(&minBits, "min-bits", 0, "minimum key size in bits (default: from config)")
	return cmd
}

func (a *app) resolveCommand() *cobra.Command {
	var caSpecs []string

	cmd := &cobra.Command{
		Use:   "resolve CERT",
		Short: "Find the immediate issuer of a certificate among the candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			cert, err := input.Read(args[0])
			if err != nil {
				return err
			}
			pool, err := a.pool(caSpecs)
			if err != nil {
				return err
			}

			ca, err := x509chain.NewResolver(a.extractor).Resolve(cert, pool)
			if err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			if ca == nil {
				fmt.Fprintln(a.out, "self-signed")
				return nil
			}
			fmt.Fprintf(a.out, "Issuer: %s\n%s", ca.Name, ca.PEM)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&caSpecs, "ca", nil, caFlagUsage)
	return cmd
}

func (a *app) ocspCommand() *cobra.Command {
	var (
		caSpecs []string
		timeout int
	)

	cmd := &cobra.Command{
		Use:   "ocsp CERT",
		Short: "Check the revocation status of a certificate with its OCSP responder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			OperationPerformed = true

			cert, err := input.Read(args[0])
			if err != nil {
				return err
			}
			pool, err := a.pool(caSpecs)
			if err != nil {
				return err
			}

			if err := a.ocspValidator(timeout).ValidateStatus(cmd.Context(), cert, pool); err != nil {
				return err
			}

			OperationPerformedSuccessfully = true
			fmt.Fprintln(a.out, "Certificate is not revoked.")
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&caSpecs, "ca", nil, caFlagUsage)
	cmd.Flags().IntVar(&timeout, "timeout", 0, "responder timeout in seconds (default: from config)")
	return cmd
}

func (a *app) inspectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect CERT",
		Short: "Show the normalized view of a certificate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cert, err := input.Read(args[0])
			if err != nil {
				return err
			}
			view, err := a.extractor.Extract(cert, "", true)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeViewJSON(a.out, view)
			case "table", "":
				return writeViewTable(a.out, view)
			default:
				return fmt.Errorf("unknown format %q, expected table or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table or json")
	return cmd
}
