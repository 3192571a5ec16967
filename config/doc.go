// SPDX-License-Identifier: MIT

// Package config loads a study definition from YAML and translates it into
// the option sets of the individual pipeline stages. A Study validates as a
// whole at load time, so a misconfigured run fails before any data is read.
package config
