// Package dataprocessing turns a raw catalog file into an analysis-ready table
// and computes the descriptive statistics the report is built from.
//
// # Architecture
//
// The package is organized into four components:
//
// 1. Loader: reads CSV or Excel input into a typed gota DataFrame
// 2. Cleaner: drops incomplete rows and normalizes duration and release year
// 3. Summarizer: computes mean, standard deviation, skewness and excess kurtosis
// 4. Diagnostics: preview, describe, schema and pairwise correlation output
//
// # Usage
//
//	loader := dataprocessing.NewLoader(logger, dataprocessing.LoadOptions{})
//	df, err := loader.LoadFile(ctx, "netflix_titles.csv")
//	if err != nil {
//	    return err
//	}
//
//	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.CleanOptions{})
//	cleaned, stats, err := cleaner.Clean(ctx, df)
//
//	moments, err := dataprocessing.NewSummarizer(logger).ComputeMoments(ctx, cleaned, "duration")
//	shape := dataprocessing.Classify(moments)
//
// # Data Flow
//
//	File → Loader → DataFrame → Cleaner → DataFrame → Summarizer → Moments
//
// Every stage returns a new DataFrame; inputs are never modified.
//
// # Error Handling
//
// Failures are returned as *errors.AppError values carrying the column, row or
// path that caused them. Missing columns are MISSING_COLUMN errors, values that
// cannot be converted are TYPE_CONVERSION errors.
package dataprocessing
