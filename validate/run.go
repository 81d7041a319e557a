// Package validate sequences the archive, structure, METS, Schematron,
// and reconciliation stages into a single ValidationReport, the way
// fulpack's api.go exposes one thin facade function per operation, each
// delegating to an unexported implementation.
package validate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/eark-validator/ipvalidator/archive"
	"github.com/eark-validator/ipvalidator/digest"
	"github.com/eark-validator/ipvalidator/ipverrors"
	"github.com/eark-validator/ipvalidator/ipvlog"
	"github.com/eark-validator/ipvalidator/manifest"
	"github.com/eark-validator/ipvalidator/mets"
	"github.com/eark-validator/ipvalidator/reconcile"
	"github.com/eark-validator/ipvalidator/report"
	"github.com/eark-validator/ipvalidator/schematron"
	"github.com/eark-validator/ipvalidator/structure"
)

// Options configures a Run call.
type Options struct {
	// CheckMetadata runs C5/C6/C7 after a clean structure check. False
	// restricts the run to structure only (the CLI's --structure flag).
	CheckMetadata bool
	// WorkDir is where archives are unpacked; empty uses the OS temp dir.
	WorkDir string
	// Logger receives stage-transition traces; Noop() if nil.
	Logger *ipvlog.Logger
	// Context is checked at METS parse and manifest-walk block
	// boundaries; a cancelled Context surfaces as a report-level
	// ipverrors.KindCancelled error from Run, the only case where Run
	// itself returns one. context.Background() if nil.
	Context context.Context
	// ChecksumAlgorithms augments the digest algorithms the manifest
	// builder derives from the METS file's own CHECKSUMTYPE
	// declarations, so a package whose METS declares no checksums at
	// all still gets hashed with these by default.
	ChecksumAlgorithms []string
}

// Run validates the information package at path and returns its
// ValidationReport. Run never returns a Go error for a validation-style
// defect — a missing path, an unreadable archive, a malformed METS
// file, a failed rule — all of those surface as TestResult entries on
// the returned report instead. The one exception is opts.Context being
// cancelled mid-run, which Run propagates as an *ipverrors.Error of
// KindCancelled instead of a partial report.
func Run(path string, opts Options) (report.ValidationReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = ipvlog.Noop()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Debug("bad input path", zap.String("path", path), zap.Error(err))
		return report.NewReport(packageOf(path, 0), structure.BadPathResults(path), nil), nil
	}

	size := info.Size()
	root := path
	isArchive := false

	if !info.IsDir() {
		if _, recognised := archive.Detect(path); recognised {
			unpacked, unpackErr := archive.Unpack(path, opts.WorkDir)
			if unpackErr != nil {
				logger.Debug("unpack failed", zap.String("path", path), zap.Error(unpackErr))
				return report.NewReport(packageOf(path, size), badUnpackResults(path, unpackErr), nil), nil
			}
			root = unpacked
			isArchive = true
		} else if strings.EqualFold(filepath.Ext(path), ".xml") {
			// A bare METS file is validated in place: its containing
			// directory stands in for the package root.
			root = filepath.Dir(path)
		} else {
			logger.Debug("unrecognised input format", zap.String("path", path))
			return report.NewReport(packageOf(path, size), structure.BadPathResults(path), nil), nil
		}
	}

	logger.Debug("structure check", zap.String("root", root))
	structResults := structure.Check(root, isArchive)

	pkg := packageOf(path, size)
	if structResults.StructResults.Status != report.WellFormed || !opts.CheckMetadata {
		return report.NewReport(pkg, structResults.StructResults, nil), nil
	}

	metadata, err := checkMetadata(ctx, root, structResults.Map, logger, opts.ChecksumAlgorithms)
	if err != nil {
		return report.ValidationReport{}, err
	}
	pkg.Profile = report.Profile{Name: "E-ARK Specification for Information Packages", Type: "SIP", Version: "2.0.4"}
	return report.NewReport(pkg, structResults.StructResults, &metadata), nil
}

func packageOf(path string, size int64) report.InformationPackage {
	return report.InformationPackage{Details: report.NewPackageDetails(path, size)}
}

func badUnpackResults(path string, err error) report.StructResults {
	if ipverrors.Is(err, ipverrors.KindMultiRoot) {
		return structure.MultiRootResults(path)
	}
	return structure.BadPathResults(path)
}

// checkMetadata runs C5 (METS parsing) on the root METS.xml and every
// representation METS it points to, then C6 (Schematron) per document
// gated by schema validity, then C7 (manifest reconciliation), merging
// every stage's findings into a single MetadataResults. It returns a
// non-nil error only when ctx is cancelled mid-run; every other defect
// is folded into the returned MetadataResults instead.
func checkMetadata(ctx context.Context, root string, structMap structure.Map, logger *ipvlog.Logger, configuredAlgorithms []string) (report.MetadataResults, error) {
	metsPath := filepath.Join(root, mets.METSFilename)
	logger.Debug("mets parse: root")
	rootDoc, err := mets.Parse(ctx, metsPath)
	if err != nil {
		if ipverrors.Is(err, ipverrors.KindCancelled) {
			return report.MetadataResults{}, err
		}
		return report.MetadataResults{
			SchemaResults: report.NewMetadataChecks([]report.TestResult{
				report.NewTestResult("METS", metsPath, err.Error(), report.Error),
			}),
			SchematronResults: report.NewMetadataChecks(nil),
		}, nil
	}

	docs := map[string]mets.Document{reconcile.RootKey: rootDoc}
	fileRefs := map[string][]mets.FileRef{reconcile.RootKey: rootDoc.FileRefs}

	for repName, ref := range rootDoc.RepresentationMets {
		joined := filepath.Join(root, filepath.FromSlash(ref.Path))
		_, repPath := mets.ResolveRelative(root, ref.Path)
		if repPath == ref.Path {
			// ResolveRelative passed the href through unchanged: no
			// "file://./" prefix was present, so it is a plain
			// root-relative path.
			repPath = joined
		}
		logger.Debug("mets parse: representation", zap.String("representation", repName))
		repDoc, repErr := mets.Parse(ctx, repPath)
		if repErr != nil {
			if ipverrors.Is(repErr, ipverrors.KindCancelled) {
				return report.MetadataResults{}, repErr
			}
			docs[repName] = mets.Document{
				SchemaChecks: report.NewMetadataChecks([]report.TestResult{
					report.NewTestResult("METS", repPath, repErr.Error(), report.Error),
				}),
			}
			continue
		}
		docs[repName] = repDoc
		fileRefs[repName] = repDoc.FileRefs
	}

	schemaChecks := make([]report.MetadataChecks, 0, len(docs))
	var schematronChecks []report.MetadataChecks
	for key, doc := range docs {
		schemaChecks = append(schemaChecks, doc.SchemaChecks)
		if !doc.SchemaValid() {
			continue
		}
		tests := structMap[key]
		location := root
		if key != reconcile.RootKey {
			location = filepath.Join(root, "representations", key)
		}
		schematronChecks = append(schematronChecks, schematron.Validate(doc, tests, key == reconcile.RootKey, location))
	}

	logger.Debug("manifest reconciliation")
	m, manifestErr := manifest.BuildFromDir(ctx, root, algorithmsFor(fileRefs, configuredAlgorithms))
	if manifestErr != nil && ipverrors.Is(manifestErr, ipverrors.KindCancelled) {
		return report.MetadataResults{}, manifestErr
	}
	var manifestFindings []report.TestResult
	if manifestErr == nil {
		manifestFindings = reconcile.Check(fileRefs, m)
	}

	schematronChecks = append(schematronChecks, report.NewMetadataChecks(manifestFindings))

	return report.MetadataResults{
		SchemaResults:     report.MergeMetadataChecks(schemaChecks...),
		SchematronResults: report.MergeMetadataChecks(schematronChecks...),
	}, nil
}

// algorithmsFor returns the digest algorithms the manifest builder
// should compute: every algorithm the METS file(s) declared a checksum
// for, plus any configured default not already present.
func algorithmsFor(fileRefs map[string][]mets.FileRef, configured []string) []digest.Algorithm {
	algs := reconcile.Algorithms(fileRefs)
	seen := make(map[digest.Algorithm]bool, len(algs))
	for _, a := range algs {
		seen[a] = true
	}
	for _, name := range configured {
		alg, ok := digest.ParseAlgorithm(name)
		if !ok || seen[alg] {
			continue
		}
		seen[alg] = true
		algs = append(algs, alg)
	}
	return algs
}
