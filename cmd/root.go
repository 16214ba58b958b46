/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oceanmesh/fvprep/InputParameters"
)

var cfgFile string
var profileCPU bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fvprep",
	Short: "FVCOM input preparation: mesh conversion, sponge layers, tidal forcing",
	Long: `
fvprep converts unstructured ocean-model grids between ADCIRC fort.14 and
FVCOM native input files, derives open boundary sponge layer damping
parameters, and assembles tidal elevation forcing from OTPS predictions
into FVCOM NetCDF forcing files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.fvprep.yaml)")
	rootCmd.PersistentFlags().BoolVar(&profileCPU, "profile", false, "write a CPU profile for this run")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		// Search config in home directory with name ".fvprep" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".fvprep")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// startProfile begins CPU profiling when --profile is set. Callers defer
// the returned stop function.
func startProfile() func() {
	if !profileCPU {
		return func() {}
	}
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	return p.Stop
}

// processCaseFile loads and validates the YAML case-parameter file every
// subcommand works from, exiting with an example when it is missing.
func processCaseFile(path string) *InputParameters.CaseParameters {
	if len(path) == 0 {
		fmt.Printf("error: must supply a case file (-I, --caseFile) in YAML format\n")
		exampleFile := `
########################################
Casename: "tst"
GridFile: "fort.14"
GridFormat: adcirc
OutputDir: "."
SpongeCoeff: 0.001
SigmaLevels: 21
TideStart: "2020-01-01 00:00"
TideEnd: "2020-01-31 00:00"
TideIntervalMinutes: 60
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	cp := &InputParameters.CaseParameters{}
	if err = cp.Parse(data); err != nil {
		fmt.Printf("error parsing %s: %s\n", path, err.Error())
		os.Exit(1)
	}
	return cp
}
