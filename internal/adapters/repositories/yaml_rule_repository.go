package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"delivery-date-service/internal/domain"
	perr "delivery-date-service/internal/platform/errors"
	"delivery-date-service/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// RuleFile is the top-level YAML document.
type RuleFile struct {
	Rules []RuleDoc `yaml:"rules"`
}

// YAMLRuleRepository serves rules from a YAML file and can hot-reload it.
type YAMLRuleRepository struct {
	path     string
	mu       sync.RWMutex
	rules    map[string]domain.DeliveryRule
	onChange []func()
}

// NewYAMLRuleRepository performs the initial load; a broken file is an error.
func NewYAMLRuleRepository(path string) (*YAMLRuleRepository, error) {
	r := &YAMLRuleRepository{path: path}
	rules, err := r.load()
	if err != nil {
		return nil, err
	}
	r.rules = rules
	return r, nil
}

func (r *YAMLRuleRepository) FindActive(_ context.Context, tenantID, region string) (*domain.DeliveryRule, error) {
	r.mu.RLock()
	rule, ok := r.rules[domain.RuleKey(tenantID, region)]
	r.mu.RUnlock()
	if !ok {
		return nil, perr.Wrapf(domain.ErrRuleNotFound, perr.ErrorCodeNotFound, "find rule tenant=%q region=%q", tenantID, region)
	}
	c := rule.Clone()
	return &c, nil
}

func (r *YAMLRuleRepository) ListActive(context.Context) ([]domain.DeliveryRule, error) {
	r.mu.RLock()
	out := make([]domain.DeliveryRule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule.Clone())
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].TenantID != out[j].TenantID {
			return out[i].TenantID < out[j].TenantID
		}
		return out[i].Region < out[j].Region
	})
	return out, nil
}

// OnChange registers a callback run after every successful reload.
func (r *YAMLRuleRepository) OnChange(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = append(r.onChange, fn)
}

// Reload re-reads the file. On failure the previous rules stay in effect.
func (r *YAMLRuleRepository) Reload() error {
	rules, err := r.load()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.rules = rules
	callbacks := make([]func(), len(r.onChange))
	copy(callbacks, r.onChange)
	r.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// Watch reloads the file whenever it changes until ctx is done. The parent
// directory is watched so editors that save by rename are picked up.
func (r *YAMLRuleRepository) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("rule file watcher: %w", err)
	}
	dir := filepath.Dir(r.path)
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("rule file watcher add %s: %w", dir, err)
	}

	log := logger.Named("rules.yaml")
	target := filepath.Clean(r.path)

	go func() {
		defer w.Close()
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if err := r.Reload(); err != nil {
					log.Warn().Err(err).Str("path", r.path).Msg("rule reload failed; keeping previous rules")
					continue
				}
				log.Info().Str("path", r.path).Int("rules", r.Len()).Msg("rules reloaded")
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("rule file watcher error")
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (r *YAMLRuleRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

func (r *YAMLRuleRepository) load() (map[string]domain.DeliveryRule, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", r.path, err)
	}
	var f RuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", r.path, err)
	}
	if len(f.Rules) == 0 {
		return nil, fmt.Errorf("rules %s: file holds no rules", r.path)
	}
	rules, err := ParseRuleDocs(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", r.path, err)
	}

	out := make(map[string]domain.DeliveryRule, len(rules))
	for _, rule := range rules {
		if !rule.Active {
			continue
		}
		key := domain.RuleKey(rule.TenantID, rule.Region)
		if _, dup := out[key]; dup {
			return nil, perr.Newf(perr.ErrorCodeDuplicateKey, "rules %s: more than one active rule for %s", r.path, key)
		}
		out[key] = rule
	}
	return out, nil
}
