package convert

import (
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"logicss/config"
	"logicss/state"
)

// buildOutputPath returns output file path for style sheet "src" (relative
// to SOURCE). Name comes from either source name or user-defined template,
// source directory structure is kept unless NoDirs is requested. Every path
// segment is cleaned and, when requested, transliterated. Extension of the
// source is always kept.
func buildOutputPath(src, dst string, changed int, env *state.LocalEnv) string {
	outDir := determineOutputDir(src, dst, env)
	ext := filepath.Ext(src)
	defaultFile := cleanPathSegment(strings.TrimSuffix(filepath.Base(src), ext), env) + ext

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expanded := expandOutputNameTemplate(src, changed, env)
	segments := splitPath(expanded)
	if len(segments) == 0 {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}

	parts := make([]string, 0, len(segments)+1)
	parts = append(parts, outDir)
	for _, s := range segments[:len(segments)-1] {
		parts = append(parts, cleanPathSegment(s, env))
	}
	parts = append(parts, cleanPathSegment(segments[len(segments)-1], env)+ext)
	return filepath.Join(parts...)
}

func determineOutputDir(src, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(src))
}

func expandOutputNameTemplate(src string, changed int, env *state.LocalEnv) string {
	values := newValues(config.OutputNameTemplateFieldName, src, changed, env.RunID.String(), env.Mode.String())
	expanded, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.String("file", src), zap.Error(err))
		return ""
	}
	return expanded
}

// splitPath breaks template result into path segments. Empty, "." and ".."
// segments are dropped so result always stays under output directory.
func splitPath(path string) []string {
	path = strings.ReplaceAll(filepath.ToSlash(path), `\`, "/")
	segments := make([]string, 0, 4)
	for s := range strings.SplitSeq(path, "/") {
		s = strings.TrimSpace(s)
		if s == "" || s == "." || s == ".." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
