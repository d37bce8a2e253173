package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/jxlsweep/types"
	"github.com/lepinkainen/jxlsweep/ui"
	"github.com/lepinkainen/jxlsweep/utils"
)

type CheckCmd struct{}

func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	version := types.DefaultVersion
	if appCtx != nil {
		version = appCtx.Version
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("jxlsweep %s - external tools", version)))

	var missing []string
	for _, status := range utils.CheckTools() {
		role := "optional"
		if status.Required {
			role = "required"
		}

		if status.Available {
			fmt.Printf("%s %s\n",
				ui.SuccessStyle.Render(fmt.Sprintf("✅ %-9s", status.Name)),
				ui.DimStyle.Render(fmt.Sprintf("(%s) %s", role, status.Version)))
			continue
		}

		if status.Required {
			missing = append(missing, status.Name)
			fmt.Printf("%s (%s) not found. %s\n",
				ui.ErrorStyle.Render(fmt.Sprintf("❌ %-9s", status.Name)), role, status.InstallHint)
		} else {
			fmt.Printf("%s (%s) not found, health check limited. %s\n",
				ui.WarnStyle.Render(fmt.Sprintf("⚠️  %-9s", status.Name)), role, status.InstallHint)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}

	fmt.Printf("\n%s\n", ui.SuccessStyle.Render("✅ All required tools available"))
	return nil
}
