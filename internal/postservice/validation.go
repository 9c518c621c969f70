package postservice

import (
	"fmt"

	"github.com/febriandika/postfolio/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
}

func validateSections(v *common.Validator, sections []SectionInput) {
	for i, section := range sections {
		if section.Type == "" {
			v.AddError(fmt.Sprintf("contentSections[%d].type", i), "must be provided")
			continue
		}
		if !section.Type.IsValid() {
			v.AddError(fmt.Sprintf("contentSections[%d].type", i), "must be one of text, image, code, video")
		}
	}
}
