// Package seed loads the optional startup dataset: passports, suppliers and
// import jobs described in a single YAML document. Seeding exists so a fresh
// process has something to serve; state is process-lifetime either way.
package seed

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"

	"github.com/openpassport/dppsrv/internal/passportsrv/importjob"
	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
	"github.com/openpassport/dppsrv/internal/passportsrv/supplier"
)

type Dataset struct {
	Passports  []passport.DigitalProductPassport
	Suppliers  []supplier.Supplier
	ImportJobs []string
}

// LoadFile parses a YAML seed file. Each top-level section is optional.
func LoadFile(path string) (*Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading seed file")
	}
	doc, err := yaml.YAMLToJSON(content)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing seed file")
	}

	ds := &Dataset{}
	if section := gjson.GetBytes(doc, "passports"); section.Exists() {
		if err := json.Unmarshal([]byte(section.Raw), &ds.Passports); err != nil {
			return nil, errors.Wrap(err, "error decoding seed passports")
		}
	}
	if section := gjson.GetBytes(doc, "suppliers"); section.Exists() {
		if err := json.Unmarshal([]byte(section.Raw), &ds.Suppliers); err != nil {
			return nil, errors.Wrap(err, "error decoding seed suppliers")
		}
	}
	if section := gjson.GetBytes(doc, "importJobs"); section.Exists() {
		if err := json.Unmarshal([]byte(section.Raw), &ds.ImportJobs); err != nil {
			return nil, errors.Wrap(err, "error decoding seed import jobs")
		}
	}
	return ds, nil
}

// Apply inserts the dataset into the stores. Records that collide with
// existing ids are skipped and logged, not treated as fatal.
func (ds *Dataset) Apply(ctx context.Context, store *passport.Store, reg *supplier.Registry, jobs *importjob.Tracker) {
	for i := range ds.Passports {
		if _, err := store.Create(ctx, &ds.Passports[i]); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("passport_id", ds.Passports[i].ID).Msg("skipping seed passport")
		}
	}
	for _, s := range ds.Suppliers {
		reg.Put(s)
	}
	for _, id := range ds.ImportJobs {
		jobs.Create(id)
	}
	log.Ctx(ctx).Info().
		Int("passports", len(ds.Passports)).
		Int("suppliers", len(ds.Suppliers)).
		Int("import_jobs", len(ds.ImportJobs)).
		Msg("seed dataset loaded")
}
