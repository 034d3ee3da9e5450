/*
Package mggif streams fully composed RGBA frames out of an in-memory GIF
(87a or 89a) byte buffer.

Frames are emitted one at a time by Decoder.NextFrame with transparency,
interlacing and inter-frame disposal already applied. Pixel rows are stored
bottom-up, matching texture upload conventions; Frame.ToNRGBA provides the
top-down view for the stdlib image packages.
*/
package mggif
