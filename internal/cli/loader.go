package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// Suite is a CUE-defined collection of formulas with expected verdicts.
type Suite struct {
	Name        string
	Description string
	Cases       []SuiteCase
}

// SuiteCase is one formula of a suite. Name is the CUE field label.
type SuiteCase struct {
	Name      string          `json:"-"`
	Formula   string          `json:"formula"`
	Expect    string          `json:"expect"`
	Valuation map[string]bool `json:"valuation,omitempty"`
}

// LoadError represents an error that occurred during suite loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSuite loads a CUE suite from a directory. The directory must
// contain at least one .cue file defining a top-level "suite" struct
// with a name and a "case" map of formulas. Loading is fail-fast: the
// first error encountered is returned.
func LoadSuite(dir string) (*Suite, error) {
	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("suite directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing suite directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	// Load CUE instances
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	suiteVal := value.LookupPath(cue.ParsePath("suite"))
	if !suiteVal.Exists() {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: `no top-level "suite" found`}
	}

	suite := &Suite{}
	if suite.Name, err = suiteVal.LookupPath(cue.ParsePath("name")).String(); err != nil {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("suite.name: %v", err), Pos: suiteVal.Pos()}
	}
	if descVal := suiteVal.LookupPath(cue.ParsePath("description")); descVal.Exists() {
		if suite.Description, err = descVal.String(); err != nil {
			return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("suite.description: %v", err), Pos: descVal.Pos()}
		}
	}

	casesVal := suiteVal.LookupPath(cue.ParsePath("case"))
	if !casesVal.Exists() {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: `suite has no "case" map`, Pos: suiteVal.Pos()}
	}
	iter, err := casesVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: fmt.Sprintf("iterating cases: %v", err)}
	}
	for iter.Next() {
		var sc SuiteCase
		if err := iter.Value().Decode(&sc); err != nil {
			return nil, &LoadError{
				Code:    ErrCodeSuiteBuild,
				Message: fmt.Sprintf("case %q: %v", iter.Label(), err),
				Pos:     iter.Value().Pos(),
			}
		}
		sc.Name = iter.Label()
		suite.Cases = append(suite.Cases, sc)
	}
	if len(suite.Cases) == 0 {
		return nil, &LoadError{Code: ErrCodeSuiteBuild, Message: "suite has no cases", Pos: suiteVal.Pos()}
	}

	// CUE field order is not part of the data model; run in label order.
	sort.Slice(suite.Cases, func(i, j int) bool {
		return suite.Cases[i].Name < suite.Cases[j].Name
	})

	return suite, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
