// Package services implements the driving port interfaces.
// Services orchestrate the driven ports: project storage, the ESX codec,
// the spreadsheet reader and configuration.
package services
