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

	"github.com/oceanmesh/fvprep/mesh"
	"github.com/oceanmesh/fvprep/readfiles"
	"github.com/oceanmesh/fvprep/sponge"
)

// spongeCmd represents the sponge command
var spongeCmd = &cobra.Command{
	Use:   "sponge",
	Short: "Compute open boundary sponge layer damping parameters",
	Long: `
Derives a damping radius for every open boundary node from the local mesh
resolution (capped at 100 km), broadcasts the configured damping
coefficient, and writes <casename>_spg.dat.`,
	Run: func(cmd *cobra.Command, args []string) {
		defer startProfile()()
		caseFile, _ := cmd.Flags().GetString("caseFile")
		cp := processCaseFile(caseFile)
		m := readCaseMesh(cp)
		if len(m.Open) == 0 {
			fmt.Printf("error: %s has no open boundary segments\n", cp.GridFile)
			os.Exit(1)
		}
		adj, err := mesh.NewAdjacency(m)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		segments := cp.SpongeSegments
		if len(segments) == 0 {
			for i := range m.Open {
				segments = append(segments, i)
			}
		}
		for _, idx := range segments {
			sp, err := sponge.Compute(m, adj, idx, cp.SpongeCoeff)
			if err != nil {
				fmt.Printf("error on segment %d: %s\n", idx, err.Error())
				os.Exit(1)
			}
			if err = m.ApplySponge(idx, sp); err != nil {
				fmt.Printf("error on segment %d: %s\n", idx, err.Error())
				os.Exit(1)
			}
			fmt.Printf("segment %d: %d sponge nodes, coeff %g\n", idx, len(sp.Radius), cp.SpongeCoeff)
		}
		path := filepath.Join(cp.OutputDir, cp.Casename+"_spg.dat")
		f, err := os.Create(path)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err = readfiles.WriteSpg(f, m); err != nil {
			fmt.Printf("error writing %s: %s\n", path, err.Error())
			os.Exit(1)
		}
		f.Close()
		fmt.Printf("wrote %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(spongeCmd)
	spongeCmd.Flags().StringP("caseFile", "I", "", "YAML case parameter file")
}
