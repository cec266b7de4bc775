// Package config provides configuration management for gradecli.
// It loads settings from the environment and an optional YAML file and
// validates them before the CLI or the viewer starts.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables that are explicitly set (highest priority)
//  2. The YAML file named by GRADES_CONFIG, or gradecli.yaml / configs/gradecli.yaml
//  3. Default values from struct tags (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern GRADES_<SECTION>_<FIELD>:
//
//	GRADES_REPORT_ROSTER_PATH=NameFile.txt
//	GRADES_REPORT_SCORES_PATH=CourseFile.txt
//	GRADES_REPORT_OUTPUT_PATH=FinalGrades.txt
//	GRADES_REPORT_FORMAT=text
//	GRADES_LOGGING_LEVEL=debug
//	GRADES_SERVER_PORT=8080
//
// # Report Paths
//
// Relative report paths are joined onto Report.BaseDir when it is set;
// otherwise they are relative to the working directory.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Testing
//
// Use config.Default() for a configuration that needs no environment.
package config
