package php

import "text/template"

const modulePreambleTemplate = `<?php

namespace {{.Namespace}};

use {{.Namespace}}\Exceptions\{{.Exception}};
`

const exceptionTemplate = `<?php
namespace {{.Namespace}}\Exceptions;

class {{.Exception}} extends \ErrorException implements SafeExceptionInterface
{
    public static function createFromPhpError(): self
    {
        $error = error_get_last();
        return new self($error['message'] ?? '{{.FallbackMessage}}', 0, $error['type'] ?? {{.FallbackSeverity}});
    }
}
`

const functionsListHeader = `<?php

return [
`

const functionsListFooter = "];\n"

// rectorHeader configures rector/rector's RenameFunctionRector.
const rectorHeader = `<?php

declare(strict_types=1);

use Rector\Renaming\Rector\FuncCall\RenameFunctionRector;
use Symfony\Component\DependencyInjection\Loader\Configurator\ContainerConfigurator;

# This file configures rector/rector:~0.8.0 to replace all PHP functions with their equivalent "safe" functions
return static function (ContainerConfigurator $containerConfigurator): void {
    $services = $containerConfigurator->services();

    $services->set(RenameFunctionRector::class)
        ->call('configure', [[ RenameFunctionRector::OLD_FUNCTION_TO_NEW_FUNCTION => [

`

const rectorFooter = "]]]);\n};\n"

var (
	modulePreambleTmpl = template.Must(template.New("preamble").Parse(modulePreambleTemplate))
	exceptionTmpl      = template.Must(template.New("exception").Parse(exceptionTemplate))
)

type preambleData struct {
	Namespace string
	Exception string
}

type exceptionData struct {
	Namespace        string
	Exception        string
	FallbackMessage  string
	FallbackSeverity int
}
