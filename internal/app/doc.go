// Package app runs the catalog analysis pipeline for one configuration.
//
// # Pipeline
//
// Run executes the stages in order, each under its own span:
//
//	1. validate          check the input file and the output locations
//	2. load              read the dataset file into a DataFrame
//	3. clean             drop incomplete rows, extract durations, type release years
//	4. derive_year_added parse date_added into an integer year
//	5. charts            relational, statistical and categorical PNGs
//	6. moments           mean, standard deviation, skewness, excess kurtosis
//	7. report            the console paragraph on the configured output
//	8. export            optional cleaned CSV and summary workbook
//
// The frame is owned by a single goroutine from load to export. The first
// stage that fails ends the run and its error is returned unchanged, so
// callers can inspect the AppError type.
//
// # Usage
//
//	a := app.New(cfg, logger, telemetry)
//	result, err := a.Run(ctx)
//	if err != nil {
//	    logger.Error("run failed", slog.String("error", err.Error()))
//	    os.Exit(1)
//	}
//
// The app does not call os.Exit itself; main controls the exit code.
package app
