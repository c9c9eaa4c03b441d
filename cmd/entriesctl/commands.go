package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wichananm65/entries-backend/internal/interface/client"
	"github.com/wichananm65/entries-backend/internal/interface/presenter"
	"github.com/wichananm65/entries-backend/internal/usecase"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		params client.ListParams
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries with filters, sorting and pagination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := opts.client().List(cmd.Context(), params)
			if err != nil {
				return describe(err)
			}
			if asJSON {
				return writeJSON(cmd, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderEntries(res.Data))
			fmt.Fprintln(cmd.OutOrStdout(), summary(res))
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVar(&params.Page, "page", 1, "page number (1-based)")
	f.IntVar(&params.Limit, "limit", 10, "entries per page")
	f.StringVar(&params.SortField, "sort", "name", "sort field: name, email, phone, place or gender")
	f.StringVar(&params.SortOrder, "order", "asc", "sort order: asc or desc")
	f.StringVar(&params.Name, "name", "", "filter by name substring")
	f.StringVar(&params.Email, "email", "", "filter by email substring")
	f.StringVar(&params.Phone, "phone", "", "filter by phone substring")
	f.StringVar(&params.Place, "place", "", "filter by place substring")
	f.StringVar(&params.Gender, "gender", "", "filter by gender: Male, Female or Other")
	f.StringSliceVar(&params.Hobbies, "hobby", nil, "filter by hobby; repeat or comma-separate to match any")
	f.BoolVar(&asJSON, "json", false, "print the raw JSON envelope")
	return cmd
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.client().Get(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}
			return printEntry(cmd, e, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON entry")
	return cmd
}

// bindEntryFlags registers the field flags shared by create and update.
func bindEntryFlags(cmd *cobra.Command, in *usecase.EntryInput) {
	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "full name (at least 2 characters)")
	f.StringVar(&in.Email, "email", "", "Gmail address")
	f.StringVar(&in.Phone, "phone", "", "10 digit phone number")
	f.StringSliceVar(&in.Hobbies, "hobbies", nil, "comma-separated hobbies")
	f.StringVar(&in.Place, "place", "", "place")
	f.StringVar(&in.Gender, "gender", "", "Male, Female or Other")
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		in     usecase.EntryInput
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.client().Create(cmd.Context(), in)
			if err != nil {
				return describe(err)
			}
			return printEntry(cmd, e, asJSON)
		},
	}
	bindEntryFlags(cmd, &in)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON entry")
	return cmd
}

// newUpdateCmd replaces an entry. Fields whose flags are not given keep
// their current value, since the server replaces every field.
func newUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		in     usecase.EntryInput
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			current, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return describe(err)
			}

			merged := mergeInput(current, in, func(name string) bool { return cmd.Flags().Changed(name) })
			e, err := c.Update(cmd.Context(), args[0], merged)
			if err != nil {
				return describe(err)
			}
			return printEntry(cmd, e, asJSON)
		},
	}
	bindEntryFlags(cmd, &in)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON entry")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.client().Delete(cmd.Context(), args[0]); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %s\n", args[0])
			return nil
		},
	}
}

func mergeInput(current *presenter.EntryResponse, in usecase.EntryInput, changed func(string) bool) usecase.EntryInput {
	out := usecase.EntryInput{
		Name:    current.Name,
		Email:   current.Email,
		Phone:   current.Phone,
		Hobbies: current.Hobbies,
		Place:   current.Place,
		Gender:  current.Gender,
	}
	if changed("name") {
		out.Name = in.Name
	}
	if changed("email") {
		out.Email = in.Email
	}
	if changed("phone") {
		out.Phone = in.Phone
	}
	if changed("hobbies") {
		out.Hobbies = in.Hobbies
	}
	if changed("place") {
		out.Place = in.Place
	}
	if changed("gender") {
		out.Gender = in.Gender
	}
	return out
}

func printEntry(cmd *cobra.Command, e *presenter.EntryResponse, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, e)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderEntry(e))
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
