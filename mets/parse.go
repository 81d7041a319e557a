package mets

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eark-validator/ipvalidator/digest"
	"github.com/eark-validator/ipvalidator/internal/casefold"
	"github.com/eark-validator/ipvalidator/ipverrors"
	"github.com/eark-validator/ipvalidator/report"
)

// Document is the result of streaming a single METS file: its recovered
// file references, any representation METS files it points to, the
// schema-level check outcome, and the presence facts the Schematron
// engine's predicates evaluate.
type Document struct {
	FileRefs           []FileRef
	RepresentationMets map[string]FileRef
	SchemaChecks       report.MetadataChecks
	Facts              Facts
}

// Facts are the mets-root-level presence/attribute facts the
// Schematron predicate engine checks against, recovered from the
// single streaming pass so C6 never has to re-parse the document.
type Facts struct {
	HasOBJID                  bool
	HasTYPE                   bool
	HasContentInformationType bool
	HasMetsHdr                bool
	HasCreateDate             bool
	HasLastModDate            bool
	HasAgent                  bool
	HasAgentNote              bool
	HasOAISPackageType        bool
	HasAltRecordID            bool
	HasAmdSec                 bool
	HasAmdMdRef               bool
	HasDmdSec                 bool
	HasDocumentationMdRef     bool
	HasStructMap              bool
	HasRepresentationsDiv     bool
	AllFilesHaveChecksums     bool
}

// SchemaValid reports whether the document parsed without a schema
// error.
func (d Document) SchemaValid() bool {
	return d.SchemaChecks.Status == report.Valid
}

// Parse streams the METS file at path. Well-formedness failures (the
// closest a streaming decoder can get to the bundled XSD's syntax
// checks without a validating XML Schema engine in this dependency set)
// surface as a single TestResult with rule_id "METS" and ERROR severity,
// never as a Go error — only a missing/unreadable file, or a cancelled
// ctx, returns one.
func Parse(ctx context.Context, path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, err
	}
	defer f.Close()

	doc := Document{RepresentationMets: map[string]FileRef{}}
	dec := xml.NewDecoder(f)

	if walkErr := walk(ctx, dec, &doc); walkErr != nil {
		if errors.Is(walkErr, context.Canceled) || errors.Is(walkErr, context.DeadlineExceeded) {
			return Document{}, ipverrors.New(ipverrors.KindCancelled, "mets.Parse", path, "mets parse cancelled", walkErr)
		}
		msg := strings.ReplaceAll(walkErr.Error(), "{"+metsNS+"}", "mets:")
		doc.SchemaChecks = report.NewMetadataChecks([]report.TestResult{
			report.NewTestResult("METS", path, msg, report.Error),
		})
		return doc, nil
	}
	doc.SchemaChecks = report.NewMetadataChecks(nil)
	return doc, nil
}

type elemFrame struct {
	name  xml.Name
	attrs []xml.Attr
}

// walk performs the single streaming pass: each <mets:FLocat> start
// event inside a <mets:file> yields a FileRef built from that file's
// attributes; a <mets:fileGrp USE="Representations/X"> groups its child
// <file> elements, separating the representation's own METS.xml from
// ordinary data files; <mets:mdRef> inside <dmdSec>/<amdSec> yields a
// FileRef built straight from its attributes.
func walk(ctx context.Context, dec *xml.Decoder, doc *Document) error {
	var stack []elemFrame
	var repName string // non-empty while inside a Representations fileGrp
	var currentFile *elemFrame
	var sawFileWithoutChecksum bool
	facts := &doc.Facts

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			facts.AllFilesHaveChecksums = !sawFileWithoutChecksum
			return nil
		}
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, elemFrame{name: t.Name, attrs: t.Attr})

			switch {
			case t.Name.Space == metsNS && t.Name.Local == "mets":
				facts.HasOBJID = attrValue(t.Attr, "", "OBJID") != ""
				facts.HasTYPE = attrValue(t.Attr, "", "TYPE") != ""
				facts.HasContentInformationType = attrValue(t.Attr, "", "CONTENTINFORMATIONTYPE") != ""
			case t.Name.Space == metsNS && t.Name.Local == "metsHdr":
				facts.HasMetsHdr = true
				facts.HasCreateDate = attrValue(t.Attr, "", "CREATEDATE") != ""
				facts.HasLastModDate = attrValue(t.Attr, "", "LASTMODDATE") != ""
				facts.HasOAISPackageType = attrValue(t.Attr, "", "OAISPACKAGETYPE") != ""
			case t.Name.Space == metsNS && t.Name.Local == "agent":
				facts.HasAgent = true
			case t.Name.Space == metsNS && t.Name.Local == "note" && inElement(stack, "agent"):
				facts.HasAgentNote = true
			case t.Name.Space == metsNS && t.Name.Local == "altRecordID":
				facts.HasAltRecordID = true
			case t.Name.Space == metsNS && t.Name.Local == "amdSec":
				facts.HasAmdSec = true
			case t.Name.Space == metsNS && t.Name.Local == "dmdSec":
				facts.HasDmdSec = true
			case t.Name.Space == metsNS && t.Name.Local == "structMap":
				facts.HasStructMap = true
			case t.Name.Space == metsNS && t.Name.Local == "div":
				if attrValue(t.Attr, "", "LABEL") == "Representations" {
					facts.HasRepresentationsDiv = true
				}
			case t.Name.Space == metsNS && t.Name.Local == "fileGrp":
				if use := attrValue(t.Attr, "", "USE"); strings.HasPrefix(use, "Representations/") {
					parts := strings.Split(use, "/")
					repName = parts[len(parts)-1]
				}
			case t.Name.Space == metsNS && t.Name.Local == "file":
				frame := elemFrame{name: t.Name, attrs: t.Attr}
				currentFile = &frame
				if attrValue(t.Attr, "", "CHECKSUMTYPE") == "" || attrValue(t.Attr, "", "CHECKSUM") == "" {
					sawFileWithoutChecksum = true
				}
			case t.Name.Space == metsNS && t.Name.Local == "FLocat" && currentFile != nil:
				href := attrValue(t.Attr, xlinkNS, "href")
				ref := fileRefFromAttrs(currentFile.attrs, href)
				if repName != "" && casefold.Equal(filepath.Base(ref.Path), METSFilename) {
					doc.RepresentationMets[repName] = ref
				} else {
					doc.FileRefs = append(doc.FileRefs, ref)
				}
			case t.Name.Space == metsNS && t.Name.Local == "mdRef" && inMdSection(stack):
				href := attrValue(t.Attr, xlinkNS, "href")
				if inElement(stack, "amdSec") {
					facts.HasAmdMdRef = true
				}
				if strings.Contains(strings.ToLower(href), "documentation") {
					facts.HasDocumentationMdRef = true
				}
				doc.FileRefs = append(doc.FileRefs, fileRefFromAttrs(t.Attr, href))
			}

		case xml.EndElement:
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.name.Space == metsNS && top.name.Local == "fileGrp" {
					repName = ""
				}
				if top.name.Space == metsNS && top.name.Local == "file" {
					currentFile = nil
				}
			}
		}
	}
}

// inElement reports whether stack contains an ancestor with local name
// local in the METS namespace.
func inElement(stack []elemFrame, local string) bool {
	for _, f := range stack {
		if f.name.Space == metsNS && f.name.Local == local {
			return true
		}
	}
	return false
}

// inMdSection reports whether stack (excluding its top, the element
// currently being opened) contains a dmdSec or amdSec ancestor.
func inMdSection(stack []elemFrame) bool {
	for _, f := range stack {
		if f.name.Space == metsNS && (f.name.Local == "dmdSec" || f.name.Local == "amdSec") {
			return true
		}
	}
	return false
}

func attrValue(attrs []xml.Attr, space, local string) string {
	for _, a := range attrs {
		if a.Name.Local == local && (space == "" || a.Name.Space == space) {
			return a.Value
		}
	}
	return ""
}

func fileRefFromAttrs(attrs []xml.Attr, href string) FileRef {
	ref := FileRef{Path: href, SizeDeclared: attrValue(attrs, "", "SIZE")}
	algStr := attrValue(attrs, "", "CHECKSUMTYPE")
	hexStr := attrValue(attrs, "", "CHECKSUM")
	if algStr != "" && hexStr != "" {
		if alg, ok := digest.ParseAlgorithm(algStr); ok {
			if c, err := digest.NewChecksum(alg, strings.ToLower(hexStr)); err == nil {
				ref.Checksum = &c
			}
		}
	}
	return ref
}
