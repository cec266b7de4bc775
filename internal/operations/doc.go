// Package operations drives a grade report run.
//
// A run is a fixed sequence of stages:
//
//	validate      check the request and that both inputs are readable
//	parse_roster  read the roster into a domain.Roster
//	parse_scores  read every course score line
//	build         join, grade and sort
//	write         encode the report and place it on disk
//
// Parsers fail fast, so the first malformed line ends the run before
// anything is written. Each stage is logged, traced and timed. Preview
// stops after build and never touches the output file.
//
// Example usage:
//
//	p, err := operations.NewPipeline(providers, logger)
//	res, err := p.Run(ctx, operations.RequestFromConfig(cfg.Report))
//	if err != nil {
//		f := operations.DescribeError(err)
//		fmt.Fprintf(os.Stderr, "%s error: %s\n", f.Kind, f.Message)
//	}
package operations
