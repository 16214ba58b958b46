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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oceanmesh/fvprep/readfiles"
)

// tideCmd represents the tide command
var tideCmd = &cobra.Command{
	Use:   "tide",
	Short: "Assemble tidal elevation forcing at the open boundary",
	Long: `
With --setup, writes the OTPS predict_tide inputs for the mesh's open
boundary nodes: <casename>_lat_lon (site positions) and <casename>_times
(the forcing time stamps).

Given --prediction, parses a predict_tide output file and writes the
FVCOM elevation forcing file <casename>_obc.nc.`,
	Run: func(cmd *cobra.Command, args []string) {
		defer startProfile()()
		caseFile, _ := cmd.Flags().GetString("caseFile")
		setup, _ := cmd.Flags().GetBool("setup")
		prediction, _ := cmd.Flags().GetString("prediction")
		cp := processCaseFile(caseFile)
		m := readCaseMesh(cp)
		nodes := m.OpenNodeUnion()
		if len(nodes) == 0 {
			fmt.Printf("error: %s has no open boundary nodes\n", cp.GridFile)
			os.Exit(1)
		}

		if setup {
			lats := make([]float64, len(nodes))
			lons := make([]float64, len(nodes))
			for i, v := range nodes {
				lat, lon, err := m.LatLon(v)
				if err != nil {
					fmt.Printf("error: %s\n", err.Error())
					os.Exit(1)
				}
				lats[i], lons[i] = lat, lon
			}
			start, end, interval, err := cp.TideWindow()
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			times, err := readfiles.TimeRange(start, end, interval)
			if err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			llPath := filepath.Join(cp.OutputDir, cp.Casename+"_lat_lon")
			if err := writeTo(llPath, func(f *os.File) error {
				return readfiles.WriteLatLon(f, lats, lons)
			}); err != nil {
				fmt.Printf("error writing %s: %s\n", llPath, err.Error())
				os.Exit(1)
			}
			tPath := filepath.Join(cp.OutputDir, cp.Casename+"_times")
			if err := writeTo(tPath, func(f *os.File) error {
				return readfiles.WriteTimes(f, times)
			}); err != nil {
				fmt.Printf("error writing %s: %s\n", tPath, err.Error())
				os.Exit(1)
			}
			fmt.Printf("wrote %s and %s for %d sites, %d times\n", llPath, tPath, len(nodes), len(times))
			return
		}

		if prediction == "" {
			fmt.Printf("error: must supply --setup or a prediction file (-P, --prediction)\n")
			os.Exit(1)
		}
		pf, err := os.Open(prediction)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		pred, err := readfiles.ReadPrediction(pf)
		pf.Close()
		if err != nil {
			fmt.Printf("error parsing %s: %s\n", prediction, err.Error())
			os.Exit(1)
		}
		_, nsite := pred.Elev.Dims()
		if nsite != len(nodes) {
			fmt.Printf("error: prediction has %d sites, mesh has %d open boundary nodes\n",
				nsite, len(nodes))
			os.Exit(1)
		}
		nodes32 := make([]int32, len(nodes))
		for i, v := range nodes {
			nodes32[i] = int32(v)
		}
		path, err := readfiles.WriteOBCNetCDF(cp.OutputDir, cp.Casename, nodes32, pred.Times, pred.Elev)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote %s: %d nodes, %d times\n", path, len(nodes), len(pred.Times))
	},
}

func init() {
	rootCmd.AddCommand(tideCmd)
	tideCmd.Flags().StringP("caseFile", "I", "", "YAML case parameter file")
	tideCmd.Flags().Bool("setup", false, "write OTPS lat_lon and times input files")
	tideCmd.Flags().StringP("prediction", "P", "", "OTPS predict_tide output file to convert")
}

func writeTo(path string, fn func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
