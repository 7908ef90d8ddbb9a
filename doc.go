// Copyright (c) Paul R. Tagliamonte <paul@k3xec.com>, 2020
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package radio contains the data model shared by the six demodulation
// schemes implemented in hz.tools/radio/pipeline: sample and audio blocks,
// mode parameters, buffer pools, and the error kinds raised by the
// controller and its collaborators.
//
// Subpackages compose on top of this one:
//
//	dsp         FIR filter, mixer, downsamplers, discriminators, stereo PLL
//	pipeline    per-scheme demodulators built from dsp primitives
//	controller  owns the active pipeline, frequency offset, and squelch gate
//	source      tuner abstraction and byte->float source adapter
//	sink        audio sink contract and a counting/ticking sink
//	region      regional de-emphasis presets
package radio

// vim: foldmethod=marker
