package parkscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	importDirectoryMessageType = "parks.import_directory"
	importFileMessageType      = "parks.import_file"
)

// ImportDirectoryCommand imports every park guide under Directory.
type ImportDirectoryCommand struct {
	// Directory is the content root, relative or absolute.
	Directory string `json:"directory"`
	// DryRun extracts and validates without writing to the database.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ImportDirectoryCommand) Type() string { return importDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ImportDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(notBlank(
			"parks.import_directory.directory_required", "directory is required",
		))),
	)
}

// ImportFileCommand imports a single park guide.
type ImportFileCommand struct {
	Path string `json:"path"`
}

// Type implements command.Message.
func (ImportFileCommand) Type() string { return importFileMessageType }

// Validate requires a markdown file path.
func (cmd ImportFileCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path,
			validation.Required,
			validation.By(notBlank("parks.import_file.path_required", "path is required")),
			validation.By(func(value any) error {
				if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(value.(string))), ".md") {
					return validation.NewError("parks.import_file.not_markdown", "path must be a .md file")
				}
				return nil
			}),
		),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if strings.TrimSpace(value.(string)) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
