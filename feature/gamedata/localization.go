package gamedata

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"holotable/core/store"

	"go.uber.org/zap"
)

// Localization files arrive as "Loc_<LANG>.txt" entries of "key | value"
// lines. Lines starting with the comment marker carry no entries.
const (
	locFilePrefix    = "Loc_"
	locFileSuffix    = ".txt"
	locCommentMarker = "#"
)

// updateLocalizationBundle fetches and persists the per-language display
// text for remoteVersion. Only allow-listed languages are retained; the
// version record is written only after every configured language has been
// processed. Callers must hold s.mu.
func (s *Service) updateLocalizationBundle(ctx context.Context, remoteVersion string) error {
	if s.cfg.DisableLocalization {
		return nil
	}

	s.logger.Info("Updating localization bundle",
		zap.String("version", remoteVersion),
		zap.Bool("unzip", s.cfg.UseUnzip))

	bundle, err := s.client.GetLocalizationBundle(ctx, remoteVersion, s.cfg.UseUnzip)
	if err != nil {
		return fmt.Errorf("localization update to %s failed: %w", remoteVersion, err)
	}

	var languages []string
	wanted := s.wantedLanguages()

	process := func(fileName string, content io.Reader) error {
		lang, ok := languageFromFileName(fileName)
		if !ok || !wanted[lang] {
			return nil
		}
		entries := parseLocalization(content)
		doc := store.Document{Version: remoteVersion, Data: mustMarshal(entries)}
		if err := s.store.Write(ctx, lang, doc); err != nil {
			return err
		}
		languages = append(languages, lang)
		return nil
	}

	if bundle.Files != nil {
		for name, content := range bundle.Files {
			if err := process(name, strings.NewReader(content)); err != nil {
				return fmt.Errorf("localization update to %s failed: %w", remoteVersion, err)
			}
		}
	} else {
		if err := s.processZippedBundle(bundle.Base64Zip, process); err != nil {
			return fmt.Errorf("localization update to %s failed: %w", remoteVersion, err)
		}
	}

	record := store.Document{Version: remoteVersion, Data: mustMarshal(languages)}
	if err := s.store.Write(ctx, locVersionDoc, record); err != nil {
		return fmt.Errorf("localization update to %s failed: %w", remoteVersion, err)
	}

	s.state.LocalizationVersion = remoteVersion
	s.logger.Info("Localization updated",
		zap.String("version", remoteVersion),
		zap.Strings("languages", languages))
	return nil
}

// processZippedBundle decodes the base64 archive and streams each contained
// file through process.
func (s *Service) processZippedBundle(encoded string, process func(string, io.Reader) error) error {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("cannot decode localization archive: %w", err)
	}

	archive, err := zip.NewReader(bytes.NewReader(compressed), int64(len(compressed)))
	if err != nil {
		return fmt.Errorf("cannot open localization archive: %w", err)
	}

	for _, file := range archive.File {
		rc, err := file.Open()
		if err != nil {
			return fmt.Errorf("cannot open %s in localization archive: %w", file.Name, err)
		}
		err = process(file.Name, rc)
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) wantedLanguages() map[string]bool {
	wanted := make(map[string]bool)
	for _, lang := range s.cfg.LanguageList() {
		wanted[strings.ToUpper(lang)] = true
	}
	return wanted
}

// languageFromFileName extracts "ENG_US" from "Loc_ENG_US.txt".
func languageFromFileName(name string) (string, bool) {
	base := name
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	if !strings.HasPrefix(base, locFilePrefix) || !strings.HasSuffix(base, locFileSuffix) {
		return "", false
	}
	lang := strings.TrimSuffix(strings.TrimPrefix(base, locFilePrefix), locFileSuffix)
	if lang == "" {
		return "", false
	}
	return strings.ToUpper(lang), true
}

// parseLocalization reads "key | value" lines into a map. Comments and
// lines missing either half are skipped.
func parseLocalization(r io.Reader) map[string]string {
	entries := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, locCommentMarker) {
			continue
		}
		key, value, found := strings.Cut(line, "|")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		entries[key] = value
	}
	return entries
}
