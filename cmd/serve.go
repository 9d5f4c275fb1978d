package cmd

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/avollmer/partita/ambitus"
	"github.com/avollmer/partita/combination"
	"github.com/avollmer/partita/model"
	"github.com/avollmer/partita/score"
	"github.com/avollmer/partita/util"
	"github.com/avollmer/partita/voice"
)

var serveRoot string

func init() {
	serveCmd.Flags().StringVar(&serveRoot, "root", ".",
		"folder whose MIDI files are served for analysis")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves score analysis over HTTP",
	Long:  `Serves part range, grouping and combination analysis as a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleFiles lists the MIDI files below the serve root.
func HandleFiles(w http.ResponseWriter, r *http.Request) {
	var files []string
	walk := func(s string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && util.IsMidiPath(s) {
			files = append(files, s)
		}
		return nil
	}
	if err := filepath.WalkDir(serveRoot, walk); err != nil {
		writeError(w, 500, err.Error())
		return
	}
	json.NewEncoder(w).Encode(model.FileListResponse{Files: files})
}

// HandleAnalyze runs grouping and combination counting for one file.
func HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, 400, "could not read request body")
		return
	}

	var input model.AnalyzeRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, 400, "could not unmarshal request body: "+err.Error())
		return
	}
	// keep requests inside the served folder
	if strings.Contains(input.Path, "..") {
		writeError(w, 400, "path may not leave the served folder")
		return
	}

	sc, err := score.Load(filepath.Join(serveRoot, input.Path))
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}

	var res model.AnalyzeResponse
	for _, pr := range sc.PartRanges() {
		part := sc.Parts[pr.Part]
		res.Parts = append(res.Parts, model.PartSummary{
			Name:   part.Name,
			Events: len(part.Events),
			Low:    pr.Low,
			High:   pr.High,
			Voices: len(voice.Partition(part.Events).Voices),
		})
	}

	groups, err := ambitus.Group(sc.PartRanges(), input.VoiceNum, input.Distribution)
	if err != nil {
		writeError(w, 422, err.Error())
		return
	}
	res.Groups = groups

	options := make([][]int, input.VoiceNum)
	for partIndex, group := range groups {
		options[group] = append(options[group], partIndex)
	}
	combos, err := combination.Enumerate(options)
	if err == nil {
		res.Combinations = len(combos)
	}

	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/files", HandleFiles).Methods("GET")
	router.HandleFunc("/analyze", HandleAnalyze).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Fatal(http.ListenAndServe(":8080", handler))
}
