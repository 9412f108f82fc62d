// Copyright 2018 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package analyzer is the orchestrator that runs the predicate normalizer,
// query rewriter and partition pruner over a parse graph in the order
// spec.md §2 lays out, rule by rule, the way the teacher's analyzer package
// runs its own rule batches over a query plan.
package analyzer

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"

	"github.com/cubrid-go/rewriter/sql/predicate"
)

// Config is the YAML-loaded set of knobs §4.B.9 and §4.D leave conditional.
// DefaultConfig, not the zero value, is the conservative default a fresh
// installation ships with: no host-variable late binding, no plan cache,
// ORDERED hints respected, and the source's default literal-string
// precision. The zero value leaves ORDERED hints unrespected and the
// literal precision at 0.
type Config struct {
	HostVarLateBinding  bool `yaml:"host_var_late_binding"`
	PlanCacheEnabled    bool `yaml:"plan_cache_enabled"`
	OrderedHintRespected bool `yaml:"ordered_hint_respected"`
	MaxLiteralPrecision int  `yaml:"max_literal_precision"`
}

// DefaultConfig returns the conservative defaults: ORDERED hints respected
// and the source's 255-byte default literal precision, everything else off.
func DefaultConfig() Config {
	return Config{
		OrderedHintRespected: true,
		MaxLiteralPrecision:  255,
	}
}

// LoadConfig reads a YAML config file, starting from DefaultConfig so an
// omitted key keeps its conservative default rather than zeroing out.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// normalizeConfig narrows Config down to the fields predicate.Normalize
// actually consumes.
func (c Config) normalizeConfig() predicate.NormalizeConfig {
	return predicate.NormalizeConfig{
		HostVarLateBinding: c.HostVarLateBinding,
		PlanCacheEnabled:   c.PlanCacheEnabled,
	}
}
