// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package textract

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

var extensionTypes = map[string]string{
	".pdf":      "application/pdf",
	".doc":      "application/msword",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pptx":     "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".potx":     "application/vnd.openxmlformats-officedocument.presentationml.template",
	".xlsx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xlsm":     "application/vnd.ms-excel.sheet.macroenabled.12",
	".xltx":     "application/vnd.openxmlformats-officedocument.spreadsheetml.template",
	".xls":      "application/vnd.ms-excel",
	".odt":      "application/vnd.oasis.opendocument.text",
	".ott":      "application/vnd.oasis.opendocument.text-template",
	".odp":      "application/vnd.oasis.opendocument.presentation",
	".otp":      "application/vnd.oasis.opendocument.presentation-template",
	".odg":      "application/vnd.oasis.opendocument.graphics",
	".otg":      "application/vnd.oasis.opendocument.graphics-template",
	".ods":      "application/vnd.oasis.opendocument.spreadsheet",
	".ots":      "application/vnd.oasis.opendocument.spreadsheet-template",
	".rtf":      "application/rtf",
	".dxf":      "application/dxf",
	".html":     "text/html",
	".htm":      "text/html",
	".xhtml":    "text/html",
	".xml":      "text/xml",
	".csv":      "text/csv",
	".txt":      "text/plain",
	".text":     "text/plain",
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".js":       "application/javascript",
	".json":     "text/plain",
	".rss":      "application/rss+xml",
	".atom":     "application/atom+xml",
	".epub":     "application/epub+zip",
	".ipynb":    "application/x-ipynb+json",
	".png":      "image/png",
	".jpg":      "image/jpeg",
	".jpeg":     "image/jpeg",
	".gif":      "image/gif",
}

// TypeByExtension returns the MIME type for a file name's extension, or
// "" if it is unknown.
func TypeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return mediaType(mime.TypeByExtension(ext))
}

// DetectFileType names the MIME type of the file at path, first by its
// extension and then by sniffing its contents.
func DetectFileType(path string) (string, error) {
	if t := TypeByExtension(path); t != "" {
		return t, nil
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return "", err
	}
	return mediaType(m.String()), nil
}

// detectType picks a MIME type for downloaded content: the declared
// Content-Type unless it is missing or generic, then the URL's extension,
// then the content itself.
func detectType(declared, name string, data []byte) string {
	if t := mediaType(declared); t != "" && t != octetStream {
		return t
	}
	if t := TypeByExtension(name); t != "" {
		return t
	}
	return mediaType(mimetype.Detect(data).String())
}

// mediaType strips parameters such as charset from a MIME type.
func mediaType(t string) string {
	if t == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(t); err == nil {
		return mt
	}
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return normalizeType(t)
}
