package api

import "commander/model"

// Field correspondence between model.Command and the DTO shapes. Every
// function names each field it copies; none of the inbound ones touch ID.

// ToReadDto converts a stored command into its response shape.
func ToReadDto(c model.Command) CommandReadDto {
	return CommandReadDto{
		ID:       c.ID,
		HowTo:    c.HowTo,
		Line:     c.Line,
		Platform: c.Platform,
	}
}

// ToReadDtos converts a list of commands. The result is never nil so an empty
// store encodes as [].
func ToReadDtos(cs []model.Command) []CommandReadDto {
	out := make([]CommandReadDto, 0, len(cs))
	for _, c := range cs {
		out = append(out, ToReadDto(c))
	}
	return out
}

// FromCreateDto builds a new, not yet persisted command.
func FromCreateDto(d CommandCreateDto) model.Command {
	return model.Command{
		HowTo:    d.HowTo,
		Line:     d.Line,
		Platform: d.Platform,
	}
}

// ToUpdateDto produces the document a PATCH is applied to.
func ToUpdateDto(c model.Command) CommandUpdateDto {
	return CommandUpdateDto{
		HowTo:    c.HowTo,
		Line:     c.Line,
		Platform: c.Platform,
	}
}

// ApplyUpdateDto overwrites every mutable field of c from d.
func ApplyUpdateDto(d CommandUpdateDto, c *model.Command) {
	c.HowTo = d.HowTo
	c.Line = d.Line
	c.Platform = d.Platform
}
