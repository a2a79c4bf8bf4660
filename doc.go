/*
 * Copyright 2022 The Gremlins Authors
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

/*
Mutantkraken is a mutation testing engine for a JVM-targeted
statically-typed language, driven through an external build tool.
Given a source tree and its existing unit-test suite, it introduces
small semantic faults ("mutants") into source files, rebuilds and
re-tests the suite per mutant, and reports whether each mutant was
killed or survived.

Usage

To execute a mutation test run, from the root of the target project:

	$ mutantkraken mutate

To write a template configuration file if one isn't already present:

	$ mutantkraken config --setup

To remove the engine's output directory:

	$ mutantkraken clean

Mutantkraken will report each mutant as:
 - KILLED: the test suite failed against the mutant.
 - SURVIVED: the test suite passed against the mutant.
 - BUILD FAILED: the mutant did not compile.
 - TIMED OUT: the test phase exceeded its per-mutant budget.
 - FAILED: a process-level error occurred running the mutant.

Configuration

Mutantkraken uses Viper (https://github.com/spf13/viper) layered over
command flags, environment variables, and a JSON configuration file
named mutantkraken.config.json in the project root. Each layer takes
precedence over the next in that order. Environment variables follow:

	MUTANTKRAKEN_<SECTION>_<FIELD>

Example:

	$ MUTANTKRAKEN_THREADING_MAX_THREADS=8 mutantkraken mutate
*/
package mutantkraken
