package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// run information
	RunInfo           Code = 1000
	RunCacheHit       Code = 1001
	RunCacheWriteFail Code = 1002
	RunSkippedIface   Code = 1003

	// configuration errors
	CfgInfo                   Code = 4000
	CfgMalformedContainer     Code = 4001
	CfgNestedSequence         Code = 4002
	CfgOptionalBeforeRequired Code = 4003
	CfgStaticMismatch         Code = 4004
	CfgDuplicateAttribute     Code = 4005
	CfgUnknownType            Code = 4006
	CfgEmptyOverloadSet       Code = 4007
	CfgMissingInterface       Code = 4008
	CfgBadTableEntry          Code = 4009
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	RunInfo:           "Run information",
	RunCacheHit:       "Resolution served from cache",
	RunCacheWriteFail: "Could not write resolution cache",
	RunSkippedIface:   "Interface skipped",

	CfgInfo:                   "Configuration information",
	CfgMalformedContainer:     "Malformed container type",
	CfgNestedSequence:         "Sequences of sequences are not supported",
	CfgOptionalBeforeRequired: "Optional parameter precedes a required one",
	CfgStaticMismatch:         "Overloads disagree on static",
	CfgDuplicateAttribute:     "Ambiguous attribute match",
	CfgUnknownType:            "Unknown type",
	CfgEmptyOverloadSet:       "Empty overload set",
	CfgMissingInterface:       "Missing interface declaration",
	CfgBadTableEntry:          "Invalid type table entry",
}

// ID returns the stable short identifier, e.g. CFG4001.
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// IsConfiguration reports whether the code belongs to the fatal
// configuration-error range.
func (c Code) IsConfiguration() bool {
	return c > CfgInfo && c < 5000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
