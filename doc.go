// Package factorboot is an in-memory toolkit for stability-aware Principal
// Component Analysis over psychosocial survey constructs — from raw item
// responses to bootstrap-validated component structures.
//
// 🚀 What is factorboot?
//
//	A deterministic, reproducible library that brings together:
//		• Metadata contract: frozen item→construct mapping, validated up front
//		• Construct aggregation: item means/sums with coverage thresholds
//		• Standardization: per-construct z-scoring with explicit fitted params
//		• PCA engine: covariance + Jacobi eigen decomposition, ordered loadings
//		• Bootstrap stability: resample → refit → sign/order alignment → CIs
//		• Predictive validation: ridge regression with R², RMSE, MAE
//
// ✨ Why choose factorboot?
//
//   - Reproducible by construction – seedable RNG, deterministic loop orders,
//     results independent of worker completion order
//   - Rock-solid error taxonomy – sentinel errors, errors.Is everywhere,
//     contract violations fail before any computation
//   - Pure Go numeric core – no cgo, no hidden deps
//   - Explicit configuration – functional options plus a YAML study file
//
// Everything is organized under focused subpackages:
//
//	survey/     — raw response tables, column canonicalization, imputation
//	metadata/   — the item→construct mapping contract and its validator
//	matrix/     — dense numeric kernels (eigen, LU, covariance, selection)
//	pca/        — standardizer and PCA engine
//	bootstrap/  — the resample/refit/align/aggregate stability analyzer
//	ridge/      — out-of-sample predictive validation
//	config/     — YAML study configuration resolved into options
//
// A typical run wires them in one direction:
//
//	raw + metadata → construct matrix → standardize → baseline PCA
//	                                  → bootstrap analyzer → summary
//
// Dive into the package docs and example tests for full walkthroughs.
package factorboot
