package schematron

import "github.com/eark-validator/ipvalidator/mets"

// predicates maps each rule id to the Go stand-in for its Schematron
// "test" expression, evaluated against the Facts a mets.Parse pass
// recovered.
var predicates = map[string]func(mets.Facts) bool{
	"CSIP1":   func(f mets.Facts) bool { return f.HasOBJID },
	"CSIP3":   func(f mets.Facts) bool { return f.HasTYPE },
	"CSIP5":   func(f mets.Facts) bool { return f.HasContentInformationType },
	"CSIP10":  func(f mets.Facts) bool { return f.HasMetsHdr },
	"CSIP11":  func(f mets.Facts) bool { return f.HasCreateDate },
	"CSIP12":  func(f mets.Facts) bool { return f.HasLastModDate },
	"CSIP13":  func(f mets.Facts) bool { return f.HasAgent },
	"CSIP14":  func(f mets.Facts) bool { return f.HasAgentNote },
	"CSIP15":  func(f mets.Facts) bool { return f.HasOAISPackageType },
	"CSIP16":  func(f mets.Facts) bool { return f.HasAltRecordID },
	"CSIP60":  func(f mets.Facts) bool { return f.HasDocumentationMdRef },
	"CSIP88":  func(f mets.Facts) bool { return f.HasAmdSec },
	"CSIP97":  func(f mets.Facts) bool { return f.HasAmdMdRef },
	"CSIP101": func(f mets.Facts) bool { return f.HasDmdSec },
	"CSIP113": func(f mets.Facts) bool { return f.AllFilesHaveChecksums },
	"CSIP114": func(f mets.Facts) bool { return f.HasRepresentationsDiv },
}

// nonRootSkips are the rule ids that never apply to a representation's
// own METS.xml, only to the package's root METS.xml.
var nonRootSkips = map[string]bool{
	"CSIP10": true, "CSIP11": true, "CSIP12": true, "CSIP13": true,
	"CSIP14": true, "CSIP15": true, "CSIP16": true,
	"CSIP101": true, "CSIP114": true,
}
