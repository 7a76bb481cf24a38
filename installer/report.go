package installer

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"webup/stackup/domain"
)

// WriteReport prints the summary of a finished installation.
func WriteReport(w io.Writer, config domain.Config, ictx domain.InstallContext, colored bool) {
	title := paint(colored, color.FgGreen, color.Bold)
	key := paint(colored, color.FgCyan)
	warn := paint(colored, color.FgYellow)

	fmt.Fprintln(w)
	title.Fprintln(w, "Installation complete")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s https://%s\n", key.Sprint("URL:        "), ictx.Domain)
	fmt.Fprintf(w, "%s %s\n", key.Sprint("Admin email:"), ictx.Email)
	fmt.Fprintln(w)
	warn.Fprintln(w, "Store these secrets somewhere safe, they are not shown again:")
	fmt.Fprintf(w, "%s %s\n", key.Sprint("  DB root password:"), ictx.DBRootPassword)
	fmt.Fprintf(w, "%s %s\n", key.Sprint("  DB password:     "), ictx.DBPassword)
	fmt.Fprintf(w, "%s %s\n", key.Sprint("  Redis password:  "), ictx.RedisPassword)

	if len(config.Checklist) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Next steps:")
		for _, item := range config.Checklist {
			fmt.Fprintf(w, "  - %s\n", item)
		}
	}
	fmt.Fprintln(w)
}

func (in *Installer) report(ctx context.Context, ictx *domain.InstallContext) error {
	WriteReport(in.Out, in.Config, *ictx, in.Colored)
	return nil
}

func paint(colored bool, attributes ...color.Attribute) *color.Color {
	c := color.New(attributes...)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
