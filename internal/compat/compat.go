// Package compat records feature-compatibility declarations and checks the
// host store against the plugin's minimum versions.
package compat

import (
	"strings"
	"sync"

	"golang.org/x/mod/semver"
)

// FeatureCustomOrderTables is the high-performance order storage feature.
const FeatureCustomOrderTables = "custom_order_tables"

// Declaration is one plugin's stance on one store feature.
type Declaration struct {
	Feature    string `json:"feature"`
	Plugin     string `json:"plugin"`
	Compatible bool   `json:"compatible"`
}

// FeaturesUtil collects compatibility declarations made during
// before_woocommerce_init.
type FeaturesUtil struct {
	mu    sync.RWMutex
	decls []Declaration
}

// NewFeaturesUtil returns an empty declaration set.
func NewFeaturesUtil() *FeaturesUtil {
	return &FeaturesUtil{}
}

// DeclareCompatibility records that plugin is (in)compatible with feature.
// Repeating a declaration is accepted; contradicting an earlier one is
// rejected and returns false.
func (f *FeaturesUtil) DeclareCompatibility(feature, plugin string, compatible bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, d := range f.decls {
		if d.Feature == feature && d.Plugin == plugin {
			return d.Compatible == compatible
		}
	}
	f.decls = append(f.decls, Declaration{Feature: feature, Plugin: plugin, Compatible: compatible})
	return true
}

// IsCompatible returns the declaration for plugin and feature, if any.
func (f *FeaturesUtil) IsCompatible(feature, plugin string) (compatible, declared bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, d := range f.decls {
		if d.Feature == feature && d.Plugin == plugin {
			return d.Compatible, true
		}
	}
	return false, false
}

// Declarations returns all declarations in the order they were made.
func (f *FeaturesUtil) Declarations() []Declaration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Declaration, len(f.decls))
	copy(out, f.decls)
	return out
}

// Requirements are the host versions the plugin supports.
type Requirements struct {
	WordPressMin      string `json:"wordpress_min"`
	WooCommerceMin    string `json:"woocommerce_min"`
	WooCommerceTested string `json:"woocommerce_tested"`
}

// PluginRequirements are the versions from the plugin header.
var PluginRequirements = Requirements{
	WordPressMin:      "6.1",
	WooCommerceMin:    "8.0",
	WooCommerceTested: "8.3",
}

// Canonical turns a store version string ("8.3", "8.3.1", "v9.0.0-beta.1")
// into canonical semver, or "" if it is not a version.
func Canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// SatisfiedBy reports whether the WooCommerce version meets the minimum.
// Unparseable versions never satisfy it.
func (r Requirements) SatisfiedBy(wooVersion string) bool {
	return atLeast(wooVersion, r.WooCommerceMin)
}

// WordPressSatisfiedBy reports whether the WordPress version meets the minimum.
// WordPress is not always reported; an empty version is accepted.
func (r Requirements) WordPressSatisfiedBy(wpVersion string) bool {
	if strings.TrimSpace(wpVersion) == "" {
		return true
	}
	return atLeast(wpVersion, r.WordPressMin)
}

// Tested reports whether the WooCommerce version is within the tested
// major.minor range. Patch releases of the tested version count as tested.
func (r Requirements) Tested(wooVersion string) bool {
	v := Canonical(wooVersion)
	tested := Canonical(r.WooCommerceTested)
	if v == "" || tested == "" {
		return false
	}
	return semver.Compare(semver.MajorMinor(v), semver.MajorMinor(tested)) <= 0
}

func atLeast(version, min string) bool {
	v := Canonical(version)
	m := Canonical(min)
	if v == "" || m == "" {
		return false
	}
	return semver.Compare(v, m) >= 0
}
