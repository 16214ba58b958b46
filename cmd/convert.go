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

	"github.com/spf13/cobra"

	"github.com/oceanmesh/fvprep/InputParameters"
	"github.com/oceanmesh/fvprep/mesh"
	"github.com/oceanmesh/fvprep/readfiles"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a source grid into the FVCOM native input file set",
	Long: `
Reads an ADCIRC fort.14 or FVCOM grid file and writes the FVCOM case
files: <casename>_grd.dat, _dep.dat, _cor.dat, _obc.dat and _sigma.dat,
plus _spg.dat when the source carried sponge data.`,
	Run: func(cmd *cobra.Command, args []string) {
		defer startProfile()()
		caseFile, _ := cmd.Flags().GetString("caseFile")
		cp := processCaseFile(caseFile)
		cp.Print()
		m := readCaseMesh(cp)
		if err := readfiles.WriteFVCOMCase(cp.OutputDir, cp.Casename, m); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if err := readfiles.WriteSigmaFile(cp.OutputDir, cp.Casename, cp.SigmaLevels); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote FVCOM case %q: %d nodes, %d cells, %d open boundary segments\n",
			cp.Casename, m.Nv, m.Ne, len(m.Open))
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringP("caseFile", "I", "", "YAML case parameter file")
}

// readCaseMesh reads and validates the mesh named by the case parameters.
func readCaseMesh(cp *InputParameters.CaseParameters) *mesh.Mesh {
	format, err := readfiles.ParseFormat(cp.GridFormat)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	m, err := readfiles.ReadMeshFile(cp.GridFile, format, readfiles.Options{
		InvertDepth: cp.InvertDepth,
		SourceProj:  cp.SourceProj,
	})
	if err != nil {
		fmt.Printf("error reading %s: %s\n", cp.GridFile, err.Error())
		os.Exit(1)
	}
	return m
}
