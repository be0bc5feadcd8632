package flags

import (
	"github.com/urfave/cli"
)

// MarkRequired marks flags with the specified names as required.
func MarkRequired(flagSet []cli.Flag, names ...string) []cli.Flag {
	updated := make([]cli.Flag, 0, len(flagSet))
	for _, flag := range flagSet {
		for _, n := range names {
			if n == flag.GetName() {
				switch f := flag.(type) {
				case cli.StringFlag:
					f.Required = true
					flag = f
				case cli.IntFlag:
					f.Required = true
					flag = f
				case cli.GenericFlag:
					f.Required = true
					flag = f
				}
				break
			}
		}
		updated = append(updated, flag)
	}
	return updated
}
